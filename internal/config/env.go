package config

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/flower/internal/options"
)

// EnvPrefix selects which environment variables belong to this program.
const EnvPrefix = "FLOWER_"

// entry is one coerced assignment contributed by an overlay.
type entry struct {
	name  string
	value any
}

// parseEnv extracts option assignments from the process environment. A
// variable is considered only when its name starts with EnvPrefix and the
// lower-cased remainder names a registered option; everything else is left
// untouched. Coercion failures are fatal and name the offending variable.
func parseEnv(environ []string) ([]entry, error) {
	var entries []entry
	for _, kv := range environ {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		spec, found := options.Lookup(name)
		if !found {
			continue
		}
		value, err := options.Coerce(spec, raw)
		if err != nil {
			return nil, fmt.Errorf("environment variable %s: %w", key, err)
		}
		entries = append(entries, entry{name: name, value: value})
	}
	return entries, nil
}
