package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors the overridable Config fields. Variables use the
// CHATADMIN_ prefix, e.g. CHATADMIN_SERVER_ADDR, CHATADMIN_REQUEST_TIMEOUT
// ("10s"), CHATADMIN_DATABASE_PATH.
type envConfig struct {
	ServerAddr     string        `envconfig:"SERVER_ADDR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	DatabasePath   string        `envconfig:"DATABASE_PATH"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process("chatadmin", &ec); err != nil {
		panic(err)
	}

	if ec.ServerAddr != "" {
		cfg.ServerAddr = ec.ServerAddr
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
}
