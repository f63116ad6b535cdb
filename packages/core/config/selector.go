package config

import "strings"

// Selector picks what to run: either a predefined suite or a list of tests.
// The only implementations are Suite and Tests.
type Selector interface {
	isSelector()
	String() string
}

// Suite selects a predefined suite by alias.
type Suite struct {
	Name string
}

func (Suite) isSelector() {}

func (s Suite) String() string {
	return "suite " + s.Name
}

// Tests selects individual test cases.
type Tests struct {
	Names []string
}

func (Tests) isSelector() {}

func (t Tests) String() string {
	return "tests " + strings.Join(t.Names, ",")
}
