package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadFile reads the user config layer from path. A missing file yields an
// empty layer. Keys are canonicalized and unknown keys are dropped before
// the remaining options are validated.
func LoadFile(path string) (Values, error) {
	log := zap.S().Named("config")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugw("no user config file", "path", path)
		return Values{}, nil
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	// An empty file sets nothing.
	if len(doc.Content) == 0 {
		return Values{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Values{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Reason: "top-level value must be a mapping"}
	}

	values := Values{}
	seen := map[string]string{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		key := CanonicalName(keyNode.Value)

		if !IsKnown(key) {
			log.Warnw("ignoring unknown option in config file", "path", path, "option", keyNode.Value)
			continue
		}
		if prev, dup := seen[key]; dup {
			return nil, &ParseError{
				Path:   path,
				Reason: fmt.Sprintf("keys %q and %q both set option %s", prev, keyNode.Value, key),
			}
		}
		seen[key] = keyNode.Value

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("option %s: %w", key, err)}
		}
		// a key without a value leaves the option unset
		if value == nil {
			continue
		}
		values[key] = value
	}

	if err := validateDocument(values); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	log.Debugw("loaded user config file", "path", path, "options", len(values))
	return values, nil
}
