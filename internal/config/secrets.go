// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// SecretsDir is the default directory of secret files.
const SecretsDir = ".secrets"

// Secret file names understood by ApplySecrets.
const (
	SecretOpenAlexEmail     = "openalex-email"
	SecretSummaryServerBase = "summary-server-base"
)

// LoadSecrets reads all files in dir and returns a map of filename to
// trimmed contents. Each file is one secret: the filename is the key and
// the contents are the value. A missing directory yields an empty map;
// unreadable files are logged and skipped.
func LoadSecrets(dir string, logger zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Str("secret", name).Err(err).Msg("could not read secret")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// ApplySecrets copies known secrets into cfg where the config file and
// environment left the value empty or at its default.
func ApplySecrets(cfg *types.Config, secrets map[string]string) {
	if v, ok := secrets[SecretOpenAlexEmail]; ok && cfg.Search.OpenAlexEmail == "" {
		cfg.Search.OpenAlexEmail = v
	}
	if v, ok := secrets[SecretSummaryServerBase]; ok {
		if cfg.Summary.ServerBase == "" || cfg.Summary.ServerBase == Default().Summary.ServerBase {
			cfg.Summary.ServerBase = v
		}
	}
}
