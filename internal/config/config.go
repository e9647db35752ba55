// Package config loads runtime configuration by layering defaults, an
// optional YAML file and GRADEBOOK_* environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Addr     string `koanf:"addr"`
	DBDriver string `koanf:"db_driver"` // sqlite|postgres
	DBDSN    string `koanf:"db_dsn"`

	AuthSecret string `koanf:"auth_secret"`
	// Seeded accounts, username -> "bcrypt-hash:role".
	Users map[string]string `koanf:"users"`

	CORSOrigins []string `koanf:"cors_origins"`
	Metrics     bool     `koanf:"metrics"`
}

func defaults() *Config {
	return &Config{
		Addr:     ":8080",
		DBDriver: "sqlite",
		Metrics:  true,
		CORSOrigins: []string{
			"http://localhost:3000",
		},
	}
}

// Load builds a Config. Precedence (low -> high):
//  1. defaults
//  2. YAML file named by GRADEBOOK_CONFIG, if set
//  3. env vars (GRADEBOOK_ADDR, GRADEBOOK_DB_DRIVER, ...)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("GRADEBOOK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("GRADEBOOK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "gradebook_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.AuthSecret == "" {
		return nil, errors.New("auth_secret must be set")
	}
	return cfg, nil
}

// ParseUser splits a seeded account value into its bcrypt hash and role.
// The role follows the last colon; bcrypt hashes contain colons in none
// of their fields.
func ParseUser(v string) (passHash, role string, err error) {
	i := strings.LastIndex(v, ":")
	if i < 0 {
		return "", "", errors.New(`user entry must look like "<bcrypt-hash>:<role>"`)
	}
	return v[:i], v[i+1:], nil
}
