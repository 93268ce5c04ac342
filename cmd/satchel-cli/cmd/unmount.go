package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unmountCmd = &cobra.Command{
	Use:   "unmount <path>",
	Short: "Unmount a mounted folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := reg.UnmountFolder(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Unmounted %s\n", result.Path)
		warn(result.Warning)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unmountCmd)
}
