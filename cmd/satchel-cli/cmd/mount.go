package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:   "mount <path>",
	Short: "Mount a local folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := reg.MountFolder(args[0])
		if err != nil {
			return err
		}

		if result.AlreadyMounted {
			fmt.Printf("Already mounted: %s (%d files)\n", result.Path, len(result.Files))
		} else {
			fmt.Printf("Mounted %s (%d files)\n", result.Path, len(result.Files))
		}
		for _, f := range result.Files {
			fmt.Printf("  %s\n", f.Name)
		}
		warn(result.Warning)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
}
