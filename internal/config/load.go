package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, when present, a
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file. Returns a populated Config struct or an
// error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.rate_limit_rps", 5)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment carries the settings.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// critical ones explicitly.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "LIBRARY_SERVER_PORT"},
		{"server.log_level", "LIBRARY_SERVER_LOG_LEVEL"},
		{"server.rate_limit_rps", "LIBRARY_SERVER_RATE_LIMIT_RPS"},
		{"server.rate_limit_burst", "LIBRARY_SERVER_RATE_LIMIT_BURST"},
		{"database.url", "LIBRARY_DATABASE_URL"},
		{"auth.jwt_secret", "LIBRARY_AUTH_JWT_SECRET"},
		{"auth.token_lifetime_minutes", "LIBRARY_AUTH_TOKEN_LIFETIME_MINUTES"},
		{"redis.addr", "LIBRARY_REDIS_ADDR"},
		{"redis.password", "LIBRARY_REDIS_PASSWORD"},
		{"redis.db", "LIBRARY_REDIS_DB"},
		{"amqp.url", "LIBRARY_AMQP_URL"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
