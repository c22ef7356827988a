// Package config handles configuration loading for agent-nebula.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	database:
//	  path: "${NEBULA_DB_PATH}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	simulation:
//	  turn_delay: "1s"
//	  generation_timeout: "60s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8000"  # API and event stream
//
// Database:
//
//	database:
//	  path: "data/nebula.db"
//
// Simulation timing:
//
//	simulation:
//	  turn_delay: "1s"           # Pause between turns
//	  generation_timeout: "60s"  # Budget per model call
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
// Load configuration from a path:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or start from built-in defaults:
//
//	cfg := config.Default()
package config
