package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/eugenenazirov/flower/internal/options"
)

func TestResolvePrecedence(t *testing.T) {
	conf := writeConfig(t, "custom.toml", `
port = 7777
address = "file-host"
max_tasks = 2000
`)

	argv := []string{"--conf=" + conf, "--port=5556"}
	environ := []string{"FLOWER_PORT=6666", "FLOWER_ADDRESS=env-host"}

	result, err := Resolve(argv, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := result.Options

	// CLI wins over env and file.
	if got := opts.Int("port"); got != 5556 {
		t.Fatalf("expected CLI port to win, got %d", got)
	}
	// Env wins over file.
	if got := opts.Str("address"); got != "env-host" {
		t.Fatalf("expected env address to win, got %q", got)
	}
	// File wins over default.
	if got := opts.Int("max_tasks"); got != 2000 {
		t.Fatalf("expected file max_tasks to win, got %d", got)
	}
	// Untouched options keep their defaults.
	if got := opts.Bool("enable_events"); got != true {
		t.Fatalf("expected enable_events default, got %v", got)
	}
}

func TestResolveAllSourcesEmptyYieldsDefaults(t *testing.T) {
	result, err := Resolve(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := result.Options

	for _, spec := range options.All() {
		switch spec.Type {
		case options.Int:
			if !spec.Multiple && opts.Int(spec.Name) != spec.Default.(int) {
				t.Fatalf("option %s does not equal its default", spec.Name)
			}
		case options.Bool:
			if !spec.Multiple && opts.Bool(spec.Name) != spec.Default.(bool) {
				t.Fatalf("option %s does not equal its default", spec.Name)
			}
		default:
			if !spec.Multiple && opts.Str(spec.Name) != spec.Default.(string) {
				t.Fatalf("option %s does not equal its default", spec.Name)
			}
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	conf := writeConfig(t, "custom.toml", `port = 7777`)
	argv := []string{"--conf=" + conf, "--debug"}
	environ := []string{"FLOWER_ADDRESS=env-host"}

	first, err := Resolve(argv, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Resolve(argv, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Options.Int("port") != second.Options.Int("port") {
		t.Fatalf("port differs between identical resolutions")
	}
	if first.Options.Str("address") != second.Options.Str("address") {
		t.Fatalf("address differs between identical resolutions")
	}
	if first.Options.Bool("debug") != second.Options.Bool("debug") {
		t.Fatalf("debug differs between identical resolutions")
	}
	if !reflect.DeepEqual(first.Options.Strings("tasks_columns"), second.Options.Strings("tasks_columns")) {
		t.Fatalf("tasks_columns differs between identical resolutions")
	}
}

func TestResolveCLIFalseBeatsTruthyFileAndEnv(t *testing.T) {
	conf := writeConfig(t, "custom.toml", `debug = true`)
	environ := []string{"FLOWER_DEBUG=true"}

	for _, arg := range []string{"--debug=false", "--no-debug"} {
		result, err := Resolve([]string{"--conf=" + conf, arg}, environ)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", arg, err)
		}
		if result.Options.Bool("debug") {
			t.Fatalf("%s: expected CLI negation to win over file and env", arg)
		}
	}
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	conf := writeConfig(t, "custom.toml", `port = 7777`)

	result, err := Resolve(nil, []string{"FLOWER_CONF=" + conf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Options.Int("port"); got != 7777 {
		t.Fatalf("expected port from env-named config file, got %d", got)
	}
}

func TestResolveMissingExplicitConfigIsFatal(t *testing.T) {
	if _, err := Resolve([]string{"--conf=/nonexistent/custom.toml"}, nil); !errors.Is(err, ErrMissingConfigFile) {
		t.Fatalf("expected ErrMissingConfigFile, got %v", err)
	}
}

func TestResolveReportsMisplacedFlags(t *testing.T) {
	result, err := Resolve([]string{"--app=proj", "--port=6666"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"--app"}; !reflect.DeepEqual(result.MisplacedFlags, want) {
		t.Fatalf("unexpected misplaced flags: %v", result.MisplacedFlags)
	}
}
