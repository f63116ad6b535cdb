package config

import (
	"fmt"

	"github.com/abdul-hamid-achik/tco/packages/core/suite"
	"go.uber.org/zap"
)

// Source identifies a configuration layer.
type Source string

const (
	SourceFile    Source = "file"
	SourceCLI     Source = "cli"
	SourceDefault Source = "default"
)

// Precedence lists the layers from highest to lowest priority. The user
// config file is deliberately ranked above the command line.
var Precedence = []Source{SourceFile, SourceCLI, SourceDefault}

// Resolve builds the effective configuration from command line values and
// the user config file at userConfigPath. cli holds only the options the
// user actually passed and is not modified.
func Resolve(cli Values, userConfigPath string) (*EffectiveConfig, error) {
	file, err := LoadFile(userConfigPath)
	if err != nil {
		return nil, err
	}

	builtin, err := Defaults()
	if err != nil {
		return nil, err
	}

	return ResolveLayers(map[Source]Values{
		SourceFile:    file,
		SourceCLI:     cli,
		SourceDefault: builtin,
	})
}

// ResolveLayers merges already loaded layers according to Precedence and
// validates the result.
func ResolveLayers(layers map[Source]Values) (*EffectiveConfig, error) {
	merged, sources := merge(layers)

	o, err := decodeOptions(merged)
	if err != nil {
		return nil, fmt.Errorf("decoding merged options: %w", err)
	}

	cfg, err := build(o)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	zap.S().Named("config").Debugw("resolved configuration",
		"repo", cfg.Repo,
		"selector", cfg.Selector.String(),
		"sources", sources,
	)
	return cfg, nil
}

// merge takes each known option from the highest ranked layer that sets it.
func merge(layers map[Source]Values) (Values, map[string]Source) {
	merged := Values{}
	sources := map[string]Source{}

	for _, src := range Precedence {
		for key, value := range layers[src] {
			if !IsKnown(key) {
				continue
			}
			if _, set := merged[key]; set {
				continue
			}
			merged[key] = value
			sources[key] = src
		}
	}
	return merged, sources
}

// build validates typed options and turns them into an EffectiveConfig.
func build(o *options) (*EffectiveConfig, error) {
	if o.Repo == "" {
		return nil, &MissingOptionError{Options: []string{OptRepo}}
	}

	selector, err := selectorFor(o)
	if err != nil {
		return nil, err
	}

	if len(o.Context) > MaxContexts {
		return nil, &InvalidValueError{
			Option: OptContext,
			Value:  []string(o.Context),
			Reason: fmt.Sprintf("at most %d contexts may be given", MaxContexts),
		}
	}

	for _, required := range []struct{ name, value string }{
		{OptNamespace, o.Namespace},
		{OptKubeconfig, o.Kubeconfig},
		{OptImage, o.Image},
	} {
		if required.value == "" {
			return nil, &MissingOptionError{Options: []string{required.name}}
		}
	}

	var docker *DockerRegistry
	if o.DockerServer != "" {
		if o.DockerUsername == "" {
			return nil, &MissingOptionError{Options: []string{OptDockerUsername}}
		}
		if o.DockerPassword == "" {
			return nil, &MissingOptionError{Options: []string{OptDockerPassword}}
		}
		docker = &DockerRegistry{
			Server:   o.DockerServer,
			Username: o.DockerUsername,
			Password: o.DockerPassword,
		}
	}

	repo, err := ExpandPath(o.Repo)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", OptRepo, err)
	}
	kubeconfig, err := ExpandPath(o.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", OptKubeconfig, err)
	}
	envFile := o.EnvFile
	if envFile != "" {
		if envFile, err = ExpandPath(envFile); err != nil {
			return nil, fmt.Errorf("expanding %s: %w", OptEnvFile, err)
		}
	}

	return &EffectiveConfig{
		Repo:               repo,
		Selector:           selector,
		Namespace:          o.Namespace,
		Kubeconfig:         kubeconfig,
		Contexts:           []string(o.Context),
		OperatorImage:      o.Image,
		AdmissionImage:     o.AdmissionImage,
		ServerImage:        o.ServerImage,
		ServerUpgradeImage: o.ServerUpgradeImage,
		SyncGatewayImage:   o.SyncGatewayImage,
		StorageClass:       o.StorageClass,
		CollectLogs:        o.CollectLogs,
		Docker:             docker,
		EnvFile:            envFile,
		Verbose:            o.Verbose,
	}, nil
}

// selectorFor enforces that exactly one of suite and test is set.
func selectorFor(o *options) (Selector, error) {
	var tests []string
	for _, t := range o.Test {
		if t != "" {
			tests = append(tests, t)
		}
	}
	hasSuite := o.Suite != ""
	hasTests := len(tests) > 0

	switch {
	case hasSuite && hasTests:
		return nil, &ConflictingOptionsError{Options: []string{OptSuite, OptTest}}
	case hasSuite:
		if _, ok := suite.Lookup(o.Suite); !ok {
			return nil, &InvalidValueError{
				Option: OptSuite,
				Value:  o.Suite,
				Reason: fmt.Sprintf("must be one of %v", suite.Aliases()),
			}
		}
		return Suite{Name: o.Suite}, nil
	case hasTests:
		return Tests{Names: tests}, nil
	default:
		return nil, &MissingOptionError{Options: []string{OptSuite, OptTest}}
	}
}
