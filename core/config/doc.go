// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/currykit/websession/core/config"
//
//	type StorageConfig struct {
//		Dir string `env:"SESSION_DATA_DIR" envDefault:".sessiondata"`
//	}
//
//	func main() {
//		var storage StorageConfig
//
//		// Load with error handling
//		if err := config.Load(&storage); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&storage)
//	}
//
// Each configuration type is loaded only once per application lifetime;
// repeated Load calls for the same type return the cached value.
package config
