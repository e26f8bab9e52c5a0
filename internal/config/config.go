package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config carries the daemon settings. Values come from flags, INPUTMAP_*
// environment variables and an optional config file, in that precedence
// order.
type Config struct {
	Listen           string `mapstructure:"listen"`
	DataDir          string `mapstructure:"data_dir"`
	LogLevel         string `mapstructure:"log_level"`
	FixTriggers      bool   `mapstructure:"fix_triggers"`
	RetroArchConfigs bool   `mapstructure:"retroarch_configs"`
	RetroArchDir     string `mapstructure:"retroarch_dir"`
	ScanDevices      bool   `mapstructure:"scan_devices"`
	Tray             bool   `mapstructure:"tray"`
}

// Load parses command line flags and the optional config file. args are the
// raw arguments without the program name.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("inputmap", pflag.ContinueOnError)
	flags.String("listen", ":8093", "http listen address")
	flags.String("data-dir", "data", "directory holding button maps and the device registry")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("fix-triggers", false, "normalize axes that rest on a pole instead of zero")
	flags.Bool("retroarch-configs", false, "export RetroArch joypad autoconfigs on save")
	flags.String("retroarch-dir", "", "autoconfig directory (default <data-dir>/autoconfig)")
	flags.Bool("scan-devices", true, "enumerate attached joysticks at startup")
	flags.Bool("tray", false, "show a system tray icon")
	flags.String("config", "", "config file path")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"listen":            "listen",
		"data_dir":          "data-dir",
		"log_level":         "log-level",
		"fix_triggers":      "fix-triggers",
		"retroarch_configs": "retroarch-configs",
		"retroarch_dir":     "retroarch-dir",
		"scan_devices":      "scan-devices",
		"tray":              "tray",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix("INPUTMAP")
	v.AutomaticEnv()

	if cfgFile, _ := flags.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("inputmap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/inputmap")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.RetroArchDir == "" {
		cfg.RetroArchDir = filepath.Join(cfg.DataDir, "autoconfig")
	}
	return cfg, nil
}
