package suite

import "sort"

// catalog maps the aliases accepted by --suite to framework suite names.
var catalog = map[string]string{
	"sanity":  "TestSanity",
	"p0":      "TestP0",
	"p1":      "TestP1",
	"crd":     "TestCRDValidation",
	"upgrade": "TestUpgrade",
	"rbac":    "TestRBAC",
	"ldap":    "TestLDAP",
}

// Lookup returns the framework suite name for an alias.
func Lookup(alias string) (string, bool) {
	name, ok := catalog[alias]
	return name, ok
}

// Aliases returns all known aliases in sorted order.
func Aliases() []string {
	aliases := make([]string, 0, len(catalog))
	for alias := range catalog {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
