package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// SingleSuiteName is the suite name recorded inside generated definitions
	SingleSuiteName = "TestSingle"
	// SingleSuiteTimeout bounds a generated suite
	SingleSuiteTimeout = "240m"

	// SuitesDir is where the framework looks for suite definitions, relative to the repo
	SuitesDir = "test/e2e/resources/suites"

	filePrefix = "tco-"
	fileExt    = ".yaml"
)

// Definition is the on-disk suite format understood by the E2E framework.
type Definition struct {
	Suite   string  `yaml:"suite"`
	Timeout string  `yaml:"timeout"`
	Groups  []Group `yaml:"tcGroups"`
}

type Group struct {
	Name      string     `yaml:"name"`
	Clusters  []string   `yaml:"clusters"`
	TestCases []TestCase `yaml:"testcases"`
}

type TestCase struct {
	Name string `yaml:"name"`
}

// NewSingle builds a suite running the given tests against the two
// standard clusters.
func NewSingle(tests []string) *Definition {
	cases := make([]TestCase, 0, len(tests))
	for _, t := range tests {
		cases = append(cases, TestCase{Name: t})
	}

	return &Definition{
		Suite:   SingleSuiteName,
		Timeout: SingleSuiteTimeout,
		Groups: []Group{
			{
				Name:      "Group1",
				Clusters:  []string{"BasicCluster", "NewCluster1"},
				TestCases: cases,
			},
		},
	}
}

// Generated is a suite definition written to disk for one run.
type Generated struct {
	// Name is what gets passed to the framework's -suite flag
	Name string
	Path string
}

// Remove deletes the generated file. Removing an already removed file is not an error.
func (g *Generated) Remove() error {
	if err := os.Remove(g.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing suite file: %w", err)
	}
	return nil
}

// Write stores def under the suites directory of repo using a unique file
// name. The framework resolves suites by file name, so the returned Name is
// the base name without extension.
func Write(repo string, def *Definition) (*Generated, error) {
	dir := filepath.Join(repo, SuitesDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("suites directory %s not found, is repo a couchbase-operator checkout?", dir)
	}

	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encoding suite: %w", err)
	}
	zap.S().Named("suite").Debugf("generated suite:\n%s", data)

	filename := filePrefix + uuid.New().String() + fileExt
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing suite file: %w", err)
	}

	return &Generated{
		Name: strings.TrimSuffix(filename, fileExt),
		Path: path,
	}, nil
}
