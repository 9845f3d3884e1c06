// Package config loads the tool's own runtime settings (output format,
// ABSPATH, redaction, logging and HTTP server options) from YAML files,
// environment variables and CLI flags with precedence: CLI flags > YAML
// config > Environment variables > Defaults. The WordPress values themselves
// are resolved by package resolver.
package config
