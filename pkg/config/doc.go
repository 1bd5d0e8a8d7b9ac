// Package config loads go-regform settings from the environment.
//
// Values come from REGFORM_* variables, optionally seeded from .env files via
// godotenv, and are decoded with caarlos0/env struct tags:
//
//	cfg, err := config.Load()
//	if err != nil {
//		// Handle error
//	}
//
// Command-line flags are applied on top by the caller.
package config
