package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X gopper-panel/host/commands.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	shortened := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the gopper-panel version.",
		Example: `
gopper-panel version
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if shortened {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			out, err := json.MarshalIndent(map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")

	topLevel.AddCommand(cmd)
}
