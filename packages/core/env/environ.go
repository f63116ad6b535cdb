package env

import (
	"sort"
	"strings"
)

// TestDirVar tells the framework where the operator checkout lives. It uses
// it to locate cbopctl and its resources.
const TestDirVar = "TESTDIR"

// Environ overlays the given layers onto base (KEY=value form, as returned
// by os.Environ). Later layers win. Overridden keys keep their position,
// new keys are appended in sorted order.
func Environ(base []string, layers ...map[string]string) []string {
	overrides := map[string]string{}
	for _, layer := range layers {
		for k, v := range layer {
			overrides[k] = v
		}
	}

	result := make([]string, 0, len(base)+len(overrides))
	seen := map[string]bool{}
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if v, ok := overrides[key]; ok {
			if seen[key] {
				continue
			}
			result = append(result, key+"="+v)
			seen[key] = true
			continue
		}
		result = append(result, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		result = append(result, k+"="+overrides[k])
	}

	return result
}
