// Package commands is the gopper-panel command line.
package commands

import (
	"log"

	"github.com/spf13/cobra"

	"gopper-panel/debug"
	"gopper-panel/host/config"
)

var (
	verbose bool
)

// New returns the root command
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gopper-panel",
		Short: "Printer front panel: menus, jogging and preheat for G-code printers.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				debug.SetWriter(func(msg string) { log.Println(msg) })
				debug.SetEnabled(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log panel and printer debug output.")

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every subcommand
func AddCommands(topLevel *cobra.Command) {
	addSim(topLevel)
	addRun(topLevel)
	addSnapshot(topLevel)
	addProfiles(topLevel)
	addVersion(topLevel)
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	cmd.SilenceUsage = true
	return config.Load()
}
