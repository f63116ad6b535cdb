package cmd

import (
	"os"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/suite"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	configFlag  = "config"
	dryRunFlag  = "dry-run"
	noColorFlag = "no-color"
	outputFlag  = "output"
	goFlag      = "go"
)

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// addOptionFlags registers a flag for every configuration option. Flags
// carry no defaults of their own, built-in defaults are applied during
// resolution.
func addOptionFlags(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringP(config.OptSuite, "s", "", "Suite alias to run (see 'tco suites')")
	fs.StringArrayP(config.OptTest, "t", nil, "Individual test to run (repeatable)")
	fs.StringP(config.OptRepo, "r", "", "Path to the couchbase-operator checkout")

	fs.StringP(config.OptNamespace, "n", "", "Namespace for the primary cluster (default \"default\")")
	fs.StringP(config.OptKubeconfig, "k", "", "Kube config for both clusters (default \"~/.kube/config\")")
	fs.StringArrayP(config.OptContext, "c", nil, "Kube context; give twice for separate clusters")

	fs.StringP(config.OptImage, "i", "", "Operator image")
	fs.StringP(config.OptAdmissionImage, "I", "", "Admission controller image")
	fs.String(config.OptServerImage, "", "Couchbase Server image")
	fs.String(config.OptServerUpgradeImage, "", "Couchbase Server image to upgrade to")
	fs.String(config.OptSyncGatewayImage, "", "Sync Gateway image")
	fs.StringP(config.OptStorageClass, "C", "", "Storage class for persistent volumes (default \"standard\")")

	fs.BoolP(config.OptCollectLogs, "l", false, "Collect logs on test failure")
	fs.StringP(config.OptDockerServer, "S", "", "Private registry server")
	fs.StringP(config.OptDockerUsername, "U", "", "Private registry username")
	fs.StringP(config.OptDockerPassword, "P", "", "Private registry password")
	fs.String(config.OptEnvFile, "", "Dotenv file with extra variables for the test process")
	fs.BoolP(config.OptVerbose, "v", false, "Verbose output")

	fs.String(configFlag, getEnvString("TCO_CONFIG", ""), "Path to user config file (default ~/.tco/config) (env: TCO_CONFIG)")

	_ = cmd.RegisterFlagCompletionFunc(config.OptSuite, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return suite.Aliases(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagDirname(config.OptRepo)
}

// cliValues collects the options the user set on the command line. Flags
// left untouched are absent from the result.
func cliValues(fs *pflag.FlagSet) (config.Values, error) {
	values := config.Values{}
	var err error

	fs.Visit(func(f *pflag.Flag) {
		if err != nil || !config.IsKnown(f.Name) {
			return
		}

		switch f.Value.Type() {
		case "stringArray":
			var list []string
			list, err = fs.GetStringArray(f.Name)
			values[f.Name] = list
		case "bool":
			var b bool
			b, err = fs.GetBool(f.Name)
			values[f.Name] = b
		default:
			values[f.Name] = f.Value.String()
		}
	})

	return values, err
}

// configPath returns the user config file location for this invocation.
func configPath(fs *pflag.FlagSet) (string, error) {
	if path, _ := fs.GetString(configFlag); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultPath()
}

// resolve builds the effective configuration for cmd.
func resolve(cmd *cobra.Command) (*config.EffectiveConfig, error) {
	cli, err := cliValues(cmd.Flags())
	if err != nil {
		return nil, err
	}

	path, err := configPath(cmd.Flags())
	if err != nil {
		return nil, err
	}

	return config.Resolve(cli, path)
}
