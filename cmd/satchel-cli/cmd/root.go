package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"satchel/internal/adapters/filesystem"
	"satchel/internal/adapters/jsonstore"
	"satchel/internal/adapters/sqlite"
	"satchel/internal/adapters/web"
	"satchel/internal/application"
	"satchel/internal/config"
	"satchel/internal/notify"
)

var (
	homePath     string
	registryPath string
	reg          *application.Registry
)

var rootCmd = &cobra.Command{
	Use:   "satchel-cli",
	Short: "Manage satchel mounts from the command line",
	Long: `satchel-cli manages the same mount registry the MCP server uses:
local folders, cached web pages, and read-only SQLite databases.

Changes persist immediately; a running server picks them up on its next
restart.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		reg = application.NewRegistry(application.Deps{
			Scanner:  filesystem.NewScanner(),
			Fetcher:  web.NewFetcher(),
			Opener:   sqlite.NewOpener(),
			Store:    jsonstore.New(registryPath),
			Notifier: notify.NewEmitter(),
		})
		reg.Load(homePath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if reg != nil {
			reg.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homePath, "home", config.HomePath(), "default mount folder")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", config.RegistryPath(), "path of the persisted registry file")
}

func warn(warning string) {
	if warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
}
