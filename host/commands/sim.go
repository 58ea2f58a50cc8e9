package commands

import (
	"bufio"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gopper-panel/debug"
	"gopper-panel/display/term"
	hostconfig "gopper-panel/host/config"
	"gopper-panel/panel"
	"gopper-panel/settings"
	"gopper-panel/standalone"
	"gopper-panel/standalone/machine"
)

// newSim builds an in-process printer and a panel bound to the settings store
func newSim(s *hostconfig.Settings) (*machine.Machine, *panel.Panel, *standalone.MachineConfig, error) {
	cfg, err := s.Machine()
	if err != nil {
		return nil, nil, nil, err
	}
	store := settings.Open(s.StorePath)
	profiles, err := store.Load(cfg.Preheat)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg.Preheat = profiles

	m, err := machine.NewWithConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	m.SetSoftEndstops(store.SoftEndstops(true))
	m.Start()

	p := panel.New(cfg, m, store)
	m.SetStoreHandler(func() error {
		if err := p.StoreSettings(); err != nil {
			return err
		}
		return store.SetSoftEndstops(m.SoftEndstops())
	})
	return m, p, cfg, nil
}

func addSim(topLevel *cobra.Command) {
	script := ""
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the panel against a simulated printer.",
		Example: `
gopper-panel sim
echo 'click turn=2 click print' | gopper-panel sim
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
			advance := func(dt time.Duration) { m.Advance(dt.Seconds()) }

			interactive := script == "" && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
			if interactive {
				return runTUI(p, cfg, advance)
			}

			sess := newSession(p, cfg.LCD.Columns, cfg.LCD.Rows, advance, m, cmd.OutOrStdout())
			if script != "" {
				return sess.Run(script)
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if err := sess.Run(scanner.Text()); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error: %v", err))
				}
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVarP(&script, "script", "c", "", "Run a step script instead of the interactive panel.")

	topLevel.AddCommand(cmd)
}

// runTUI shows the panel in the terminal until the user quits
func runTUI(p *panel.Panel, cfg *standalone.MachineConfig, advance func(dt time.Duration)) error {
	if verbose {
		// The TUI owns the terminal; debug output goes to a file
		f, err := tea.LogToFile("gopper-panel.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
		debug.Println("[HOST] logging to gopper-panel.log")
	}
	model := term.New(p, cfg.LCD.Columns, cfg.LCD.Rows, advance)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
