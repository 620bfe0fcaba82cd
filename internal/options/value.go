package options

import (
	"fmt"
	"strconv"
	"strings"
)

// Coerce converts a raw string into the typed value declared by spec.
// Multiple options split the raw string on commas and coerce element-wise,
// producing a typed slice; surrounding whitespace per element is trimmed.
func Coerce(spec Spec, raw string) (any, error) {
	if !spec.Multiple {
		return coerceScalar(spec, raw)
	}

	parts := strings.Split(raw, ",")
	switch spec.Type {
	case Int:
		out := make([]int, 0, len(parts))
		for _, part := range parts {
			v, err := coerceScalar(spec, strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, v.(int))
		}
		return out, nil
	case Bool:
		out := make([]bool, 0, len(parts))
		for _, part := range parts {
			v, err := coerceScalar(spec, strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, v.(bool))
		}
		return out, nil
	default:
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			out = append(out, strings.TrimSpace(part))
		}
		return out, nil
	}
}

func coerceScalar(spec Spec, raw string) (any, error) {
	switch spec.Type {
	case String, Path:
		return raw, nil
	case Int:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: option %s: %q is not an integer", ErrBadValue, spec.Name, raw)
		}
		return v, nil
	case Bool:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: option %s: %q is not a boolean", ErrBadValue, spec.Name, raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: option %s has unsupported type", ErrBadValue, spec.Name)
	}
}

// conforms reports whether a typed value matches the spec's declared shape.
func conforms(spec Spec, value any) bool {
	if spec.Multiple {
		switch spec.Type {
		case Int:
			_, ok := value.([]int)
			return ok
		case Bool:
			_, ok := value.([]bool)
			return ok
		default:
			_, ok := value.([]string)
			return ok
		}
	}
	switch spec.Type {
	case String, Path:
		_, ok := value.(string)
		return ok
	case Int:
		_, ok := value.(int)
		return ok
	case Bool:
		_, ok := value.(bool)
		return ok
	}
	return false
}
