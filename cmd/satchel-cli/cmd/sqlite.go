package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sqliteCmd = &cobra.Command{
	Use:   "sqlite <path>",
	Short: "Mount a SQLite database read-only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := reg.MountDatabase(args[0])
		if err != nil {
			return err
		}

		if result.AlreadyMounted {
			fmt.Printf("Already mounted: %s\n", result.Path)
		} else {
			fmt.Printf("Mounted %s\n", result.Path)
		}
		if len(result.Tables) == 0 {
			fmt.Println("No tables.")
		} else {
			fmt.Printf("Tables: %s\n", strings.Join(result.Tables, ", "))
		}
		warn(result.Warning)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sqliteCmd)
}
