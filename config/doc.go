// Package config provides configuration loading and validation for lakegate.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (LAKEGATE_ prefix, plus platform aliases)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with the LAKEGATE_ prefix:
//   - server.port → LAKEGATE_SERVER_PORT
//   - storage.backend → LAKEGATE_STORAGE_BACKEND
//   - storage.account → LAKEGATE_STORAGE_ACCOUNT or DATA_LAKE_STORAGE_ACCOUNT
//   - environment → LAKEGATE_ENVIRONMENT or AZURE_FUNCTIONS_ENVIRONMENT
//
// The account is read once at startup. An empty account is valid: every
// gateway request then fails with a configuration error.
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Backend must be azure, gcs, or filesystem; filesystem requires a path
//   - Tracing sample ratio must be within [0, 1]
//   - Log level must be debug, info, warn, or error
package config
