// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// JSON writes the publications as an indented array.
type JSON struct{}

func (*JSON) ContentType() string { return "application/json" }

func (*JSON) Extension() string { return "json" }

func (*JSON) Export(w io.Writer, doc Document) error {
	pubs := doc.Publications
	if pubs == nil {
		pubs = types.Dataset{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pubs)
}

// YAML writes the whole document: topic, publications, and summary.
type YAML struct{}

func (*YAML) ContentType() string { return "application/yaml" }

func (*YAML) Extension() string { return "yaml" }

func (*YAML) Export(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
