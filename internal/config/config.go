// Package config resolves runtime configuration from defaults, an optional
// config file, environment variables, and command flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sentinelflow/sentinelflow/internal/agent"
)

const (
	// DefaultOrderID pre-fills the order input, matching the engine's demo
	// data set.
	DefaultOrderID = "ORD-002"
	// DefaultWebHost and DefaultWebPort locate the browser mirror.
	DefaultWebHost = "127.0.0.1"
	DefaultWebPort = 8090
	// DefaultServePort is where the demo engine listens.
	DefaultServePort = 8000
)

// Config holds resolved runtime configuration.
type Config struct {
	EngineURL    string `mapstructure:"engine_url"`
	DefaultOrder string `mapstructure:"default_order"`
	WebHost      string `mapstructure:"web_host"`
	WebPort      int    `mapstructure:"web_port"`
	Debug        bool   `mapstructure:"debug"`
}

// Load resolves configuration for cmd. The config file, when present, lives
// at ~/.sentinelflow/config.yaml; environment variables use the SENTINELFLOW_
// prefix.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetDefault("engine_url", agent.DefaultBaseURL)
	v.SetDefault("default_order", DefaultOrderID)
	v.SetDefault("web_host", DefaultWebHost)
	v.SetDefault("web_port", DefaultWebPort)
	v.SetDefault("debug", false)

	if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".sentinelflow"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("SENTINELFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindFlag(v, cmd, "engine_url", "engine")
	bindFlag(v, cmd, "default_order", "order")
	bindFlag(v, cmd, "web_host", "web-host")
	bindFlag(v, cmd, "web_port", "web-port")
	bindFlag(v, cmd, "debug", "debug")

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.EngineURL = strings.TrimRight(cfg.EngineURL, "/")
	return cfg, nil
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	if f := cmd.Flags().Lookup(flag); f != nil {
		_ = v.BindPFlag(key, f)
	} else if f := cmd.InheritedFlags().Lookup(flag); f != nil {
		_ = v.BindPFlag(key, f)
	}
}
