package options

import (
	"reflect"
	"testing"
)

func TestNewWithDefaults(t *testing.T) {
	opts := NewWithDefaults()

	if got := opts.Int("port"); got != 5555 {
		t.Fatalf("expected default port 5555, got %d", got)
	}
	if got := opts.Str("conf"); got != DefaultConfigFile {
		t.Fatalf("expected default conf %q, got %q", DefaultConfigFile, got)
	}
	if opts.Bool("debug") {
		t.Fatalf("expected debug to default to false")
	}
	if got := opts.Strings("basic_auth"); len(got) != 0 {
		t.Fatalf("expected empty basic_auth default, got %v", got)
	}
}

func TestSetOverridesDefault(t *testing.T) {
	opts := NewWithDefaults()
	opts.Set("port", 8080)
	opts.Set("tasks_columns", []string{"name", "state"})

	if got := opts.Int("port"); got != 8080 {
		t.Fatalf("expected overridden port, got %d", got)
	}
	if want := []string{"name", "state"}; !reflect.DeepEqual(opts.Strings("tasks_columns"), want) {
		t.Fatalf("unexpected tasks_columns: %v", opts.Strings("tasks_columns"))
	}
}

func TestSliceValuesAreIsolated(t *testing.T) {
	first := NewWithDefaults()
	cols := first.Strings("tasks_columns")
	cols[0] = "mutated"

	if first.Strings("tasks_columns")[0] == "mutated" {
		t.Fatalf("mutating a returned slice must not affect the store")
	}
	if NewWithDefaults().Strings("tasks_columns")[0] == "mutated" {
		t.Fatalf("mutating a returned slice must not affect registry defaults")
	}

	supplied := []string{"name", "state"}
	first.Set("tasks_columns", supplied)
	supplied[0] = "mutated"
	if first.Strings("tasks_columns")[0] == "mutated" {
		t.Fatalf("mutating a supplied slice must not affect the store")
	}
}

func TestUnknownNamePanics(t *testing.T) {
	opts := NewWithDefaults()

	assertPanics(t, "getter", func() { opts.Str("no_such_option") })
	assertPanics(t, "setter", func() { opts.Set("no_such_option", "x") })
	assertPanics(t, "mistyped set", func() { opts.Set("port", "8080") })
	assertPanics(t, "mistyped get", func() { opts.Str("port") })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}
