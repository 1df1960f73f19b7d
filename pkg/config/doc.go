// Package config provides configuration management for the turtle console.
//
// Configuration is read from a YAML or TOML file, chosen by extension, with
// environment variable overrides on top. Every field has a default, so the
// console also runs without any file at all.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("turtle.yaml")              // file only
//	cfg, err := config.LoadConfigWithEnvOverrides("turtle.toml") // file + env
//
// LoadConfigWithEnvOverrides treats a missing file as an empty one.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TURTLE_SECTION_FIELD:
//
//   - TURTLE_INTERPRETER_MAX_CALL_DEPTH overrides interpreter.max_call_depth
//   - TURTLE_JOURNAL_RETENTION_DAYS overrides journal.retention.days
//   - TURTLE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the configuration file
//  3. Environment variable overrides
//  4. Overrides passed to Publish (command-line flags)
//  5. Validation (fails fast if invalid)
//
// # Global Configuration
//
// Commands publish the configuration once and read it back with GetConfig.
// ReloadConfig rebuilds it from the same file with the same overrides:
//
//	cfg, err := config.Publish("turtle.yaml", func(c *config.Config) {
//		c.Telemetry.Logging.Level = "debug"
//	})
//	...
//	cfg, err = config.ReloadConfig() // after the file changed
//
// # Example Configuration
//
//	interpreter:
//	  max_call_depth: 1000
//
//	canvas:
//	  width: 800
//	  height: 600
//	  background: "#101010"
//
//	journal:
//	  enabled: true
//	  driver: sqlite
//	  path: data/journal.db
//	  retention:
//	    days: 7
//	    schedule: "@daily"
//
//	telemetry:
//	  logging:
//	    level: debug
//
// The same file in TOML:
//
//	[interpreter]
//	max_call_depth = 1000
//
//	[journal]
//	enabled = true
//	retention = { days = 7, schedule = "@daily" }
package config
