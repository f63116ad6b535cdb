package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# tco user configuration.
# Values here take precedence over command line flags.
# Any long flag name can be used as a key, for example:
#   context: [kind-a, kind-b]
#   storage-class: fast
`

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter user config file",
		Long: `Create ~/.tco/config recording the operator checkout to test.

Examples:
  tco init --repo ~/src/couchbase-operator
  tco init --force`,
		Args: cobra.NoArgs,
		RunE: initCommand,
	}

	initCmd.Flags().StringP(config.OptRepo, "r", "", "Path to the couchbase-operator checkout (default: current directory)")
	initCmd.Flags().String(configFlag, getEnvString("TCO_CONFIG", ""), "Path to user config file (default ~/.tco/config) (env: TCO_CONFIG)")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	_ = initCmd.MarkFlagDirname(config.OptRepo)

	return initCmd
}

func initCommand(cmd *cobra.Command, args []string) error {
	path, err := configPath(cmd.Flags())
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
		}
	}

	repo, _ := cmd.Flags().GetString(config.OptRepo)
	if repo == "" {
		if repo, err = os.Getwd(); err != nil {
			return err
		}
	}
	if repo, err = config.ExpandPath(repo); err != nil {
		return err
	}
	if repo, err = filepath.Abs(repo); err != nil {
		return err
	}

	content, err := yaml.Marshal(map[string]any{
		config.OptRepo: repo,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	// registry passwords may end up in here
	if err := os.WriteFile(path, append([]byte(configHeader), content...), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
	return nil
}
