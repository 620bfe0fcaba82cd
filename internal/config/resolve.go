package config

import (
	"github.com/eugenenazirov/flower/internal/options"
)

// Result carries the resolved option store plus non-fatal findings collected
// during resolution. MisplacedFlags lists front-end flags found in our argv;
// the caller logs them once logging is configured.
type Result struct {
	Options        *options.Options
	MisplacedFlags []string
}

// Resolve merges all sources into one option store. Net precedence, highest
// wins: CLI > Environment > Config file > Defaults.
//
// The config-file path is itself an option, so the file cannot be read until
// CLI and environment have been applied once. The ordering below is a real
// constraint, not an accident: env and CLI run before the file read to
// resolve the path, then run again afterwards so their values win over the
// file's. Resolving twice with identical inputs yields identical results.
func Resolve(argv, environ []string) (*Result, error) {
	opts := options.NewWithDefaults()

	envEntries, err := parseEnv(environ)
	if err != nil {
		return nil, err
	}
	cliEntries, misplaced, err := parseCLI(argv)
	if err != nil {
		return nil, err
	}

	apply(opts, envEntries)
	apply(opts, cliEntries)

	fileEntries, err := parseFile(opts.Str("conf"))
	if err != nil {
		return nil, err
	}

	apply(opts, fileEntries)
	apply(opts, envEntries)
	apply(opts, cliEntries)

	return &Result{Options: opts, MisplacedFlags: misplaced}, nil
}

func apply(opts *options.Options, entries []entry) {
	for _, e := range entries {
		opts.Set(e.name, e.value)
	}
}
