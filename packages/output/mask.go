package output

import "github.com/abdul-hamid-achik/tco/packages/core/config"

const masked = "********"

// secretFlags are command line flags whose value must not be printed.
var secretFlags = map[string]bool{
	"-docker-password": true,
}

// MaskArgs returns a copy of args with secret flag values replaced.
func MaskArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if secretFlags[out[i]] {
			out[i+1] = masked
			i++
		}
	}
	return out
}

// MaskValues returns the configuration values with secrets replaced.
func MaskValues(cfg *config.EffectiveConfig) config.Values {
	values := cfg.Values()
	if _, ok := values[config.OptDockerPassword]; ok {
		values[config.OptDockerPassword] = masked
	}
	return values
}
