package config

import (
	"fmt"

	"github.com/swapnode/swapd/internal/storage/keyValueDb"
)

// Config is the complete daemon configuration.
type Config struct {
	// SelfAccount is the exchange's own account on the external ledger.
	SelfAccount string `mapstructure:"self_account"`

	// OwnerAccount co-authorizes pair administration.
	OwnerAccount string `mapstructure:"owner_account"`

	LogLevel string `mapstructure:"log_level"`

	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
}

// ServerConfig holds the JSON-RPC / websocket listen configuration.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`

	// PoolCacheSize is the LRU size for pool-info query caching.
	PoolCacheSize int `mapstructure:"pool_cache_size"`
}

// StorageConfig selects and locates the keyValueDb backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// Validate checks the configuration for obvious mistakes before startup.
func (c *Config) Validate() error {
	if c.SelfAccount == "" {
		return fmt.Errorf("self_account is required")
	}
	if c.OwnerAccount == "" {
		return fmt.Errorf("owner_account is required")
	}
	switch c.Storage.Backend {
	case keyValueDb.BackendMemory:
	case keyValueDb.BackendPebble, keyValueDb.BackendLevelDB:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for backend %q", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Server.PoolCacheSize <= 0 {
		return fmt.Errorf("server.pool_cache_size must be positive")
	}
	return nil
}
