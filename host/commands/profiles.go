package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"gopper-panel/profilesync"
	"gopper-panel/settings"
	machineconfig "gopper-panel/standalone/config"
)

func addProfiles(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage stored preheat profiles.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the preheat profiles.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			profiles, err := settings.Open(s.StorePath).Load(machineconfig.DefaultPreheat())
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Hotend"), bold.Sprint("Bed"), bold.Sprint("Fan"))
			for _, p := range profiles {
				tbl.AddRow(p.Name, strconv.Itoa(p.Hotend), strconv.Itoa(p.Bed), fmt.Sprintf("%d%%", (p.Fan*100+127)/255))
			}
			tbl.RightAlign(1)
			tbl.RightAlign(2)
			tbl.RightAlign(3)
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Upload the profiles to the configured S3 bucket.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, syncer, err := syncSetup(cmd)
			if err != nil {
				return err
			}
			if err := syncer.Push(store); err != nil {
				return err
			}
			color.Green("Pushed %s", syncer.Key())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Download the profiles from the configured S3 bucket.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, syncer, err := syncSetup(cmd)
			if err != nil {
				return err
			}
			if err := syncer.Pull(store); err != nil {
				return err
			}
			color.Green("Pulled %s", syncer.Key())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default profiles and soft endstop setting.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := settings.Open(s.StorePath).Reset(); err != nil {
				return err
			}
			color.Yellow("Settings reset")
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}

func syncSetup(cmd *cobra.Command) (*settings.Store, *profilesync.Syncer, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	if s.Bucket == "" {
		return nil, nil, fmt.Errorf("no bucket configured; set GOPPER_PANEL_BUCKET")
	}
	syncer, err := profilesync.NewFromEnv(s.Bucket, s.Prefix)
	if err != nil {
		return nil, nil, err
	}
	return settings.Open(s.StorePath), syncer, nil
}
