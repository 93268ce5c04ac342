package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Fetch a web page and mount the cached text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := reg.MountPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if result.AlreadyMounted {
			fmt.Printf("Already mounted: %q (fetched %s)\n",
				result.Title, result.FetchedAt.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Printf("Mounted %q (%d characters)\n", result.Title, len(result.Content))
		}
		warn(result.Warning)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
