package config

import "errors"

// ErrMissingConfigFile is returned when an explicitly named configuration
// file does not exist. A missing file at the built-in default name is not an
// error and is skipped silently.
var ErrMissingConfigFile = errors.New("configuration file not found")
