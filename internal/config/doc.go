// Package config resolves runtime options from multiple sources (environment
// variables, a TOML configuration file, CLI flags) into one typed option
// store with precedence: CLI flags > Environment > Config file > Defaults.
// Resolution runs once, synchronously, at process start; any failure aborts
// startup.
package config
