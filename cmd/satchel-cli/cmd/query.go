package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var copyRows bool

var queryCmd = &cobra.Command{
	Use:   "query <path> <sql>",
	Short: "Run a SELECT statement against a mounted database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := reg.Query(args[0], args[1])
		if err != nil {
			return err
		}

		rows, err := json.MarshalIndent(result.Objects(), "", "  ")
		if err != nil {
			return err
		}

		if result.Truncated {
			fmt.Printf("Returned %d of %d rows (truncated)\n", len(result.Rows), result.Total)
		} else {
			fmt.Printf("Returned %d rows\n", result.Total)
		}
		fmt.Println(string(rows))

		if copyRows {
			if err := clipboard.WriteAll(string(rows)); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Println("Copied to clipboard.")
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVar(&copyRows, "copy", false, "copy the JSON rows to the clipboard")
	rootCmd.AddCommand(queryCmd)
}
