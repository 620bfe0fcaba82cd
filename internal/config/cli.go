package config

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/flower/internal/options"
)

// Flags belonging to the wrapping worker front-end command. They are valid
// before our subcommand, not after it; when one shows up in our argv it is
// dropped and reported so the user can move it.
var frontendFlags = map[string]struct{}{
	"app":            {},
	"broker":         {},
	"result-backend": {},
	"loglevel":       {},
	"logfile":        {},
	"workdir":        {},
	"quiet":          {},
	"no-color":       {},
}

// cliTarget pairs a registry Spec with the kingpin value it parses into.
// Everything except scalar Int options parses as a raw string and goes
// through the standard coercion, so Bool options accept --name, --name=false,
// and the --no-name negation alike.
type cliTarget struct {
	spec    options.Spec
	str     *string
	integer *int
	set     bool
}

// parseCLI applies long-form flag parsing against the registry. Argv is first
// filtered: flags naming registry options are kept (dashes and underscores
// both accepted, value attached with =), front-end flags are collected as
// misplaced, anything else is dropped. The kept arguments are then parsed by
// a kingpin application generated from the registry.
func parseCLI(argv []string) ([]entry, []string, error) {
	kept, misplaced := filterArgs(argv)

	app := kingpin.New("flower", "Web based tool for monitoring and administrating task queue workers.")
	targets := make([]*cliTarget, 0, len(options.All()))
	for _, spec := range options.All() {
		target := &cliTarget{spec: spec}
		flag := app.Flag(dashName(spec.Name), spec.Help)
		flag.IsSetByUser(&target.set)
		if spec.Type == options.Int && !spec.Multiple {
			target.integer = flag.Int()
		} else {
			target.str = flag.String()
		}
		targets = append(targets, target)
	}

	if _, err := app.Parse(kept); err != nil {
		return nil, nil, fmt.Errorf("parse command line: %w", err)
	}

	var entries []entry
	for _, target := range targets {
		if !target.set {
			continue
		}
		var value any
		switch {
		case target.integer != nil:
			value = *target.integer
		case target.spec.Multiple, target.spec.Type == options.Bool:
			coerced, err := options.Coerce(target.spec, *target.str)
			if err != nil {
				return nil, nil, fmt.Errorf("flag --%s: %w", dashName(target.spec.Name), err)
			}
			value = coerced
		default:
			value = *target.str
		}
		entries = append(entries, entry{name: target.spec.Name, value: value})
	}
	return entries, misplaced, nil
}

// filterArgs keeps only flags that name registry options, rewriting them to
// the --name=value form for the flag parser. A bare Bool flag becomes
// --name=true and the --no-name negation becomes --name=false; other
// value-carrying flags must attach their value with = (a detached value
// argument does not survive the filter).
func filterArgs(argv []string) (kept, misplaced []string) {
	for _, arg := range argv {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")

		if spec, ok := options.Lookup(options.Canonical(name)); ok {
			rewritten := "--" + dashName(spec.Name)
			switch {
			case hasValue:
				rewritten += "=" + value
			case spec.Type == options.Bool && !spec.Multiple:
				rewritten += "=true"
			}
			kept = append(kept, rewritten)
			continue
		}

		if negated, found := strings.CutPrefix(options.Canonical(name), "no_"); found && !hasValue {
			if spec, ok := options.Lookup(negated); ok && spec.Type == options.Bool && !spec.Multiple {
				kept = append(kept, "--"+dashName(spec.Name)+"=false")
				continue
			}
		}

		if _, ok := frontendFlags[name]; ok {
			misplaced = append(misplaced, "--"+name)
		}
	}
	return kept, misplaced
}

func dashName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
