// Package config loads application configuration from environment variables
// into tagged Go structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file (when present) is loaded once per process, then the
// environment is parsed into any struct carrying `env` field tags. Every
// package in this module exposes such a Config struct with a DefaultConfig
// constructor, so wiring a service is:
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//
//	handler, err := session.NewFromConfig(store, cfg)
//
// Load returns ErrParsingConfig (joined with the underlying parse error)
// when a required variable is missing or a value cannot be converted;
// MustLoad panics instead for configuration the process cannot run without.
package config
