// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Year is a publication year that may be unknown. Providers report years
// as numbers, numeric strings, free text, or not at all; Year keeps the
// numeric value when there is one and a display placeholder otherwise.
type Year struct {
	n           int
	placeholder string
}

// YearOf returns a known year. Non-positive values yield an unknown year.
func YearOf(n int) Year {
	if n <= 0 {
		return Year{}
	}
	return Year{n: n}
}

// UnknownYear returns an unknown year displayed as placeholder.
func UnknownYear(placeholder string) Year {
	return Year{placeholder: strings.TrimSpace(placeholder)}
}

// ParseYear coerces provider text to a year. Like a lenient integer parse
// it reads the leading digits ("2019", " 2019 ", "2019-05" all give 2019);
// text without leading digits becomes an unknown year showing that text.
func ParseYear(s string) Year {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return UnknownYear(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return UnknownYear(s)
	}
	return Year{n: n}
}

// Int returns the numeric year and whether it is known.
func (y Year) Int() (int, bool) {
	return y.n, y.n > 0
}

// Known reports whether the year has a numeric value.
func (y Year) Known() bool { return y.n > 0 }

// String renders the number, or the placeholder for unknown years.
func (y Year) String() string {
	if y.n > 0 {
		return strconv.Itoa(y.n)
	}
	return y.placeholder
}

// MarshalJSON encodes a known year as a number and an unknown year as its
// placeholder string, or null when there is none.
func (y Year) MarshalJSON() ([]byte, error) {
	if y.n > 0 {
		return []byte(strconv.Itoa(y.n)), nil
	}
	if y.placeholder == "" {
		return []byte("null"), nil
	}
	return json.Marshal(y.placeholder)
}

// UnmarshalJSON accepts a number, a string, or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding year: %w", err)
	}
	*y = yearFromAny(v)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (y Year) MarshalYAML() (any, error) {
	if y.n > 0 {
		return y.n, nil
	}
	if y.placeholder == "" {
		return nil, nil
	}
	return y.placeholder, nil
}

// UnmarshalYAML accepts an integer, a string, or null.
func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("decoding year: %w", err)
	}
	*y = yearFromAny(v)
	return nil
}

func yearFromAny(v any) Year {
	switch t := v.(type) {
	case nil:
		return Year{}
	case float64:
		return YearOf(int(t))
	case int:
		return YearOf(t)
	case string:
		return ParseYear(t)
	default:
		return ParseYear(fmt.Sprint(t))
	}
}
