package commands

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gopper-panel/host/printer"
	"gopper-panel/host/serial"
	"gopper-panel/panel"
	"gopper-panel/settings"
)

// statusInterval is how often the remote printer is asked for temperatures
const statusInterval = time.Second

func addRun(topLevel *cobra.Command) {
	device := ""
	baud := 0
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the panel against a printer on a serial port.",
		Example: `
gopper-panel run --device /dev/ttyUSB0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if device != "" {
				s.Device = device
			}
			if baud != 0 {
				s.Baud = baud
			}
			cfg, err := s.Machine()
			if err != nil {
				return err
			}
			store := settings.Open(s.StorePath)
			if cfg.Preheat, err = store.Load(cfg.Preheat); err != nil {
				return err
			}

			r, err := printer.New(cfg)
			if err != nil {
				return err
			}
			serialCfg := serial.DefaultConfig(s.Device)
			serialCfg.Baud = s.Baud
			color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "Connecting to %s at %d baud...\n", s.Device, s.Baud)
			if err := r.Connect(serialCfg); err != nil {
				return err
			}
			defer r.Close()
			if !store.SoftEndstops(true) {
				r.SetSoftEndstops(false)
			}

			p := panel.New(cfg, r, store)
			return runTUI(p, cfg, remoteAdvance(r))
		},
	}
	cmd.Flags().StringVarP(&device, "device", "d", "", "Serial device path.")
	cmd.Flags().IntVarP(&baud, "baud", "b", 0, "Baud rate.")

	topLevel.AddCommand(cmd)
}

// remoteAdvance reads replies every tick and polls temperatures once a second
func remoteAdvance(r *printer.Remote) func(dt time.Duration) {
	var sinceStatus time.Duration
	return func(dt time.Duration) {
		r.Poll()
		sinceStatus += dt
		if sinceStatus >= statusInterval {
			sinceStatus = 0
			r.RequestStatus()
		}
	}
}
