package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mounted folders, pages, and databases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := reg.ListAll()
		if snapshot.Empty() {
			fmt.Println("Nothing mounted.")
			return nil
		}

		if len(snapshot.Folders) > 0 {
			fmt.Println("Folders:")
			for _, f := range snapshot.Folders {
				fmt.Printf("  %s (%d files)\n", f.Path, f.FileCount)
			}
		}
		if len(snapshot.Pages) > 0 {
			fmt.Println("Pages:")
			for _, p := range snapshot.Pages {
				fmt.Printf("  %s — %s (fetched %s)\n",
					p.URL, p.Title, p.FetchedAt.Format("2006-01-02 15:04:05"))
			}
		}
		if len(snapshot.Databases) > 0 {
			fmt.Println("Databases:")
			for _, d := range snapshot.Databases {
				fmt.Printf("  %s\n", d.Path)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
