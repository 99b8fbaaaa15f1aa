// Package baseline loads the default parameter set that every generated job
// starts from, and serializes per-job parameter sets back to JSON.
package baseline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Params maps parameter names to values. Values are whatever the decoder
// produced: json.Number, float64, int, string, bool, nested maps or slices.
type Params map[string]any

// Load reads a baseline configuration from path. The format is chosen by
// extension: .yaml and .yml are YAML, everything else is JSON.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	params, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode baseline %s: %w", path, err)
	}
	return params, nil
}

// Decode parses a baseline document. An empty document yields an empty,
// non-nil set.
func Decode(data []byte, ext string) (Params, error) {
	params := Params{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return params, nil
	}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(trimmed, &params); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		// Keep numbers as written so 3 stays 3 and 1e-06 stays 1e-06.
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil {
			return nil, err
		}
	}

	if params == nil {
		// A YAML document of just "~" decodes to nil.
		params = Params{}
	}
	for _, k := range slices.Sorted(maps.Keys(params)) {
		if err := checkEncodable(params[k], k); err != nil {
			return nil, err
		}
	}
	return params, nil
}

// checkEncodable rejects values Encode cannot write back as JSON. YAML
// mappings with non-string keys decode to map[any]any.
func checkEncodable(v any, path string) error {
	switch x := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			if err := checkEncodable(x[k], path+"."+k); err != nil {
				return err
			}
		}
	case map[any]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, fmt.Sprint(k))
		}
		slices.Sort(keys)
		return fmt.Errorf("%s: mapping keys must be strings, got %s", path, strings.Join(keys, ", "))
	case []any:
		for i, el := range x {
			if err := checkEncodable(el, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clone returns a shallow copy. Nested maps and slices are shared.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// With returns a copy of p with every entry of overrides set on it.
// Overrides take precedence; p itself is not modified.
func (p Params) With(overrides map[string]any) Params {
	out := p.Clone()
	maps.Copy(out, overrides)
	return out
}

// Encode serializes the parameter set as indented JSON with sorted keys and
// a trailing newline. Equal sets always encode to identical bytes.
func (p Params) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
