package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/frondui/frond/app"
)

// demoConfig holds the demo's settings. Env var overrides use prefix FROND_.
type demoConfig struct {
	App   string
	DB    string
	Mount string
}

// loadConfig reads demo.yaml and env. An explicit path is required to exist;
// the default search path is optional.
func loadConfig(path string) (demoConfig, error) {
	v := viper.New()

	// default values
	v.SetDefault("app", "counter")
	v.SetDefault("db", "frond-demo.db")
	v.SetDefault("mount", "append")

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("demo")
	}

	v.SetEnvPrefix("FROND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return demoConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		// read config file if present
		_ = v.ReadInConfig()
	}

	var c demoConfig
	if err := v.Unmarshal(&c); err != nil {
		return demoConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func parseMountType(s string) (app.MountType, error) {
	switch s {
	case "append":
		return app.Append, nil
	case "takeover":
		return app.Takeover, nil
	default:
		return 0, fmt.Errorf("unknown mount mode %q (want append or takeover)", s)
	}
}
