package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr     string
		BasePath string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level  string
		Pretty bool
	}
	GinMode      string
	ListMaxLimit int
}

// Load reads config from environment (LINKSHELF_ prefix) and optional linkshelf.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("linkshelf")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.base_path", "/api/bookmarks")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "linkshelf.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("gin.mode", "release")
	v.SetDefault("list.max_limit", 1000)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.BasePath = v.GetString("http.base_path")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")
	cfg.GinMode = v.GetString("gin.mode")
	cfg.ListMaxLimit = v.GetInt("list.max_limit")

	switch cfg.DB.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("LINKSHELF_DB_DRIVER must be sqlite or postgres, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("LINKSHELF_DB_DSN is required")
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("LINKSHELF_GIN_MODE must be debug, release or test, got %q", cfg.GinMode)
	}
	if !strings.HasPrefix(cfg.HTTP.BasePath, "/") {
		return nil, fmt.Errorf("LINKSHELF_HTTP_BASE_PATH must start with /, got %q", cfg.HTTP.BasePath)
	}

	return cfg, nil
}
