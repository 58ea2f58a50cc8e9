// Package config loads host-side settings for gopper-panel from an optional
// .gopper-panel.yaml, a .env file and GOPPER_PANEL_* environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gopper-panel/debug"
	"gopper-panel/standalone"
	machineconfig "gopper-panel/standalone/config"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "GOPPER_PANEL"

// Settings are the host options every command shares
type Settings struct {
	Device        string
	Baud          int
	StorePath     string
	MachineConfig string // JSON machine description; empty uses the built-in cartesian
	Bucket        string
	Prefix        string
	Columns       int
	Rows          int
}

// Load reads settings. Missing config and .env files are not errors.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		debug.Println("[CONFIG] .env not loaded: " + err.Error())
	}

	v := viper.New()
	v.SetDefault("device", "/dev/ttyUSB0")
	v.SetDefault("baud", 115200)
	v.SetDefault("store", defaultStorePath())
	v.SetDefault("machine", "")
	v.SetDefault("bucket", "")
	v.SetDefault("prefix", "")
	v.SetDefault("columns", 20)
	v.SetDefault("rows", 4)

	v.SetConfigName(".gopper-panel") // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Settings{
		Device:        v.GetString("device"),
		Baud:          v.GetInt("baud"),
		StorePath:     v.GetString("store"),
		MachineConfig: v.GetString("machine"),
		Bucket:        v.GetString("bucket"),
		Prefix:        v.GetString("prefix"),
		Columns:       v.GetInt("columns"),
		Rows:          v.GetInt("rows"),
	}, nil
}

// Machine loads the machine description and applies the LCD size
func (s *Settings) Machine() (*standalone.MachineConfig, error) {
	var cfg *standalone.MachineConfig
	if s.MachineConfig == "" {
		cfg = machineconfig.DefaultCartesianConfig()
	} else {
		data, err := os.ReadFile(s.MachineConfig)
		if err != nil {
			return nil, err
		}
		cfg, err = machineconfig.LoadConfig(data)
		if err != nil {
			return nil, err
		}
	}
	if s.Columns > 0 {
		cfg.LCD.Columns = s.Columns
	}
	if s.Rows > 0 {
		cfg.LCD.Rows = s.Rows
	}
	return cfg, nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gopper-panel.db"
	}
	return filepath.Join(home, ".gopper-panel.db")
}
