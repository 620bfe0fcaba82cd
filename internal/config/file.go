package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/eugenenazirov/flower/internal/options"
)

// parseFile reads option assignments from a TOML file of flat name = value
// pairs. Keys not present in the registry are ignored. A missing file is
// skipped silently only when its basename equals the built-in default
// configuration file name; a missing explicitly named file is fatal.
func parseFile(path string) ([]entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if filepath.Base(path) == options.DefaultConfigFile {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingConfigFile, path)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	var entries []entry
	for key, value := range raw {
		name := options.Canonical(key)
		spec, found := options.Lookup(name)
		if !found {
			continue
		}
		typed, err := coerceFileValue(spec, value)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		entries = append(entries, entry{name: name, value: typed})
	}
	return entries, nil
}

// coerceFileValue converts a decoded TOML value into the registry's typed
// form. Native TOML types are accepted directly; strings additionally go
// through the standard coercion so "5555" works for an Int option and a
// comma-separated string works for a Multiple one.
func coerceFileValue(spec options.Spec, value any) (any, error) {
	if spec.Multiple {
		list, ok := value.([]any)
		if !ok {
			raw, isString := value.(string)
			if !isString {
				return nil, fmt.Errorf("%w: option %s: expected array or string, got %T", options.ErrBadValue, spec.Name, value)
			}
			return options.Coerce(spec, raw)
		}
		return coerceFileList(spec, list)
	}

	switch v := value.(type) {
	case string:
		return options.Coerce(spec, v)
	case int64:
		if spec.Type != options.Int {
			return nil, fmt.Errorf("%w: option %s: unexpected integer", options.ErrBadValue, spec.Name)
		}
		return int(v), nil
	case bool:
		if spec.Type != options.Bool {
			return nil, fmt.Errorf("%w: option %s: unexpected boolean", options.ErrBadValue, spec.Name)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: option %s: unsupported value %T", options.ErrBadValue, spec.Name, value)
	}
}

func coerceFileList(spec options.Spec, list []any) (any, error) {
	switch spec.Type {
	case options.Int:
		out := make([]int, 0, len(list))
		for _, item := range list {
			v, ok := item.(int64)
			if !ok {
				return nil, fmt.Errorf("%w: option %s: expected integer elements", options.ErrBadValue, spec.Name)
			}
			out = append(out, int(v))
		}
		return out, nil
	case options.Bool:
		out := make([]bool, 0, len(list))
		for _, item := range list {
			v, ok := item.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: option %s: expected boolean elements", options.ErrBadValue, spec.Name)
			}
			out = append(out, v)
		}
		return out, nil
	default:
		out := make([]string, 0, len(list))
		for _, item := range list {
			v, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: option %s: expected string elements", options.ErrBadValue, spec.Name)
			}
			out = append(out, v)
		}
		return out, nil
	}
}
