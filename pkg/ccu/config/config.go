// Package config resolves the CCU connection settings from, in order of
// increasing precedence: the ccuctl TOML config file, a local .env file,
// and CCU_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything needed to reach a CCU and its CCU-Jack add-on.
type Config struct {
	Host     string
	Port     int
	HTTPS    bool
	Username string
	Password string
}

// Default CCU-Jack port.
const DefaultPort = 2121

// BaseURL returns the root URL of the CCU-Jack VEAP API.
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.HTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// HasAuth reports whether basic-auth credentials are configured.
func (c *Config) HasAuth() bool {
	return c.Username != "" && c.Password != ""
}

// ConfigDir returns the directory holding the ccuctl config file,
// honouring XDG_CONFIG_HOME.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ccuctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "ccuctl")
}

// Load resolves the connection configuration. A missing config file or
// .env file is not an error; everything has a usable default.
func Load() (*Config, error) {
	cfg := &Config{Host: "localhost", Port: DefaultPort}

	if err := loadFile(cfg, filepath.Join(ConfigDir(), "config.toml")); err != nil {
		return nil, err
	}

	// .env fills in variables that are not already exported, so real
	// environment variables keep precedence over the file.
	_ = godotenv.Load()
	loadEnv(cfg)

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if v.IsSet("ccu.host") {
		cfg.Host = v.GetString("ccu.host")
	}
	if v.IsSet("ccu.port") {
		cfg.Port = v.GetInt("ccu.port")
	}
	if v.IsSet("ccu.https") {
		cfg.HTTPS = v.GetBool("ccu.https")
	}
	if v.IsSet("ccu.username") {
		cfg.Username = v.GetString("ccu.username")
	}
	if v.IsSet("ccu.password") {
		cfg.Password = v.GetString("ccu.password")
	}

	return nil
}

func loadEnv(cfg *Config) {
	if host := os.Getenv("CCU_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("CCU_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	if https := os.Getenv("CCU_HTTPS"); https != "" {
		switch strings.ToLower(https) {
		case "true", "1", "yes":
			cfg.HTTPS = true
		default:
			cfg.HTTPS = false
		}
	}
	if user := os.Getenv("CCU_USERNAME"); user != "" {
		cfg.Username = user
	}
	if pass := os.Getenv("CCU_PASSWORD"); pass != "" {
		cfg.Password = pass
	}
}
