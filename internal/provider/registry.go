package provider

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// New returns the adapter for repo.
func New(repo types.Repository, client *http.Client, cfg types.SearchConfig, logger zerolog.Logger) (Provider, error) {
	logger = logger.With().Str("repository", string(repo)).Logger()
	switch repo {
	case types.RepoDBLP:
		return &DBLP{Client: client, Config: cfg, Logger: logger}, nil
	case types.RepoArXiv:
		return &ArXiv{Client: client, Config: cfg, Logger: logger}, nil
	case types.RepoOpenAlex:
		return &OpenAlex{Client: client, Config: cfg, Logger: logger}, nil
	case types.RepoOpenLibrary:
		return &OpenLibrary{Client: client, Config: cfg, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("no adapter for repository %q", repo)
	}
}

// FromConfig builds the adapters named in cfg.Providers, or all four when
// the list is empty. Every adapter shares client.
func FromConfig(cfg types.SearchConfig, client *http.Client, logger zerolog.Logger) ([]Provider, error) {
	repos := types.AllRepositories()
	if len(cfg.Providers) > 0 {
		repos = repos[:0:0]
		seen := make(map[types.Repository]bool)
		for _, name := range cfg.Providers {
			repo, err := types.ParseRepository(name)
			if err != nil {
				return nil, err
			}
			if seen[repo] {
				continue
			}
			seen[repo] = true
			repos = append(repos, repo)
		}
	}

	providers := make([]Provider, 0, len(repos))
	for _, repo := range repos {
		p, err := New(repo, client, cfg, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
