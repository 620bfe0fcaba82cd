package options

import "fmt"

// Options is the resolved option store: every registered option maps to a
// typed value, seeded from defaults and overwritten by overlays in precedence
// order. After resolution completes the store is read-only by convention.
//
// Getters panic on names missing from the registry so that option-name typos
// in calling code fail at startup instead of silently reading zero values.
type Options struct {
	values map[string]any
}

// NewWithDefaults returns a store with every registry entry set to its
// default value. Slice defaults are copied so that no store aliases the
// registry's backing arrays.
func NewWithDefaults() *Options {
	values := make(map[string]any, len(registry))
	for _, spec := range registry {
		values[spec.Name] = cloneValue(spec.Default)
	}
	return &Options{values: values}
}

// Set stores a typed value for a registered option. The value must already be
// coerced; a name outside the registry or a value of the wrong shape is a
// programmer error.
func (o *Options) Set(name string, value any) {
	spec, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("options: Set called with unregistered option %q", name))
	}
	if !conforms(spec, value) {
		panic(fmt.Sprintf("options: Set called with mistyped value %T for option %q", value, name))
	}
	o.values[name] = cloneValue(value)
}

// Str returns the value of a String or Path option.
func (o *Options) Str(name string) string {
	return get[string](o, name)
}

// Int returns the value of an Int option.
func (o *Options) Int(name string) int {
	return get[int](o, name)
}

// Bool returns the value of a Bool option.
func (o *Options) Bool(name string) bool {
	return get[bool](o, name)
}

// Strings returns a copy of the value of a Multiple String option.
func (o *Options) Strings(name string) []string {
	return append([]string(nil), get[[]string](o, name)...)
}

// cloneValue copies slice values so stores never share backing arrays with
// the registry defaults or with callers.
func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []int:
		return append([]int(nil), v...)
	case []bool:
		return append([]bool(nil), v...)
	default:
		return value
	}
}

func get[T any](o *Options, name string) T {
	if _, ok := Lookup(name); !ok {
		panic(fmt.Sprintf("options: access to unregistered option %q", name))
	}
	value, ok := o.values[name].(T)
	if !ok {
		panic(fmt.Sprintf("options: option %q accessed as %T", name, value))
	}
	return value
}
