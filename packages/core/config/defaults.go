package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in defaults layer. Options without a built-in
// default (repo, suite, test among them) are absent.
func Defaults() (Values, error) {
	var o options
	if err := defaults.Set(&o); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	data, err := yaml.Marshal(&o)
	if err != nil {
		return nil, err
	}

	values := Values{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
