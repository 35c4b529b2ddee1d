// Package config loads typed configuration structs from environment
// variables.
//
// Each component declares its own Config struct with `env` tags and the
// composition root loads them at startup:
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// A .env file, when present, is merged into the environment once per process
// before the first Load call.
package config
