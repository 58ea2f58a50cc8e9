package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	lcdpng "gopper-panel/display/png"
)

func addSnapshot(topLevel *cobra.Command) {
	script := ""
	out := "panel.png"
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the simulated panel after a step script to a PNG.",
		Example: `
gopper-panel snapshot --script 'click turn=2 click' --out motion.png
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			m, p, cfg, err := newSim(s)
			if err != nil {
				return err
			}
			sess := newSession(p, cfg.LCD.Columns, cfg.LCD.Rows, func(dt time.Duration) {
				m.Advance(dt.Seconds())
			}, m, io.Discard)
			if err := sess.Run(script); err != nil {
				return err
			}
			if err := lcdpng.Save(sess.frame, out); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			fmt.Fprintln(cmd.OutOrStdout(), sess.frame.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&script, "script", "c", "", "Steps to run before the snapshot.")
	cmd.Flags().StringVarP(&out, "out", "o", out, "PNG file to write.")

	topLevel.AddCommand(cmd)
}
