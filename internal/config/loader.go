package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration in priority order:
//  1. Default values
//  2. Configuration file (swapd.toml), if path is non-empty
//  3. Environment variables (SWAPD_ prefix)
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			// Missing file falls back to defaults and environment.
		}
	}

	v.SetEnvPrefix("SWAPD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("self_account", "swap.pools")
	v.SetDefault("owner_account", "swap.owner")
	v.SetDefault("log_level", "info")
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.pool_cache_size", 256)
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.path", "")
}
