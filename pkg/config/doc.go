// Package config loads typed configuration from the environment.
//
// Structs are annotated with `env` tags understood by
// github.com/caarlos0/env/v11; a ./.env file, when present, is read once via
// github.com/joho/godotenv before the first parse. Parsed values are cached
// per type so every package can call Load for the same struct cheaply.
//
//	var cfg sessionstore.Config
//	config.MustLoad(&cfg)
//
// Reset clears the cache, which is mostly useful in tests.
package config
