// Package config loads and validates application configuration from
// environment variables (LIBRARY_ prefix) and an optional config.yaml.
package config
