package settings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/eugenenazirov/flower/internal/auth"
	"github.com/eugenenazirov/flower/internal/options"
)

func noEnv(string) string { return "" }

func TestAssembleDefaults(t *testing.T) {
	st, err := Assemble(options.NewWithDefaults(), WithEnvLookup(noEnv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Port != 5555 {
		t.Fatalf("unexpected port: %d", st.Port)
	}
	if st.LoginURL != "/login" {
		t.Fatalf("unexpected login URL: %q", st.LoginURL)
	}
	if st.StaticURLPrefix != "/static/" {
		t.Fatalf("unexpected static prefix: %q", st.StaticURLPrefix)
	}
	if st.AuthRule != nil {
		t.Fatalf("expected authorization to be disabled")
	}
	if st.OAuth != nil {
		t.Fatalf("expected no OAuth credentials without auth")
	}
	if st.TLS != nil {
		t.Fatalf("expected no TLS bundle without cert and key")
	}
}

func TestAssembleURLPrefixing(t *testing.T) {
	opts := options.NewWithDefaults()
	opts.Set("url_prefix", "app")

	st, err := Assemble(opts, WithEnvLookup(noEnv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.LoginURL != "/app/login" {
		t.Fatalf("unexpected login URL: %q", st.LoginURL)
	}
	if st.StaticURLPrefix != "/app/static/" {
		t.Fatalf("unexpected static prefix: %q", st.StaticURLPrefix)
	}
}

func TestAssembleAuthRule(t *testing.T) {
	opts := options.NewWithDefaults()
	opts.Set("auth", "a@x.com|b@x.com")

	st, err := Assemble(opts, WithEnvLookup(noEnv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := st.AuthRule.(auth.EmailList); !ok {
		t.Fatalf("expected EmailList rule, got %T", st.AuthRule)
	}
	if st.OAuth == nil {
		t.Fatalf("expected OAuth credentials when auth is set")
	}
}

func TestAssembleAuthShapeConflict(t *testing.T) {
	opts := options.NewWithDefaults()
	opts.Set("auth", "a@x.com|.*@x.com")

	if _, err := Assemble(opts, WithEnvLookup(noEnv)); !errors.Is(err, auth.ErrShapeConflict) {
		t.Fatalf("expected ErrShapeConflict, got %v", err)
	}
}

func TestAssembleOAuthFallsBackToEnvironment(t *testing.T) {
	opts := options.NewWithDefaults()
	opts.Set("auth", "x@example.com")
	opts.Set("oauth2_key", "explicit-key")

	lookup := func(name string) string {
		switch name {
		case "FLOWER_OAUTH2_KEY":
			return "env-key"
		case "FLOWER_OAUTH2_SECRET":
			return "env-secret"
		case "FLOWER_OAUTH2_REDIRECT_URI":
			return "https://env/callback"
		}
		return ""
	}

	st, err := Assemble(opts, WithEnvLookup(lookup))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Explicit option values win; unset ones fall back to the environment.
	if st.OAuth.Key != "explicit-key" {
		t.Fatalf("unexpected OAuth key: %q", st.OAuth.Key)
	}
	if st.OAuth.Secret != "env-secret" {
		t.Fatalf("unexpected OAuth secret: %q", st.OAuth.Secret)
	}
	if st.OAuth.RedirectURI != "https://env/callback" {
		t.Fatalf("unexpected OAuth redirect URI: %q", st.OAuth.RedirectURI)
	}
}

func TestAssembleTLSBundle(t *testing.T) {
	t.Run("requires both cert and key", func(t *testing.T) {
		opts := options.NewWithDefaults()
		opts.Set("certfile", "cert.pem")

		st, err := Assemble(opts, WithEnvLookup(noEnv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.TLS != nil {
			t.Fatalf("expected no TLS bundle with cert only")
		}
	})

	t.Run("paths are absolute", func(t *testing.T) {
		opts := options.NewWithDefaults()
		opts.Set("certfile", "cert.pem")
		opts.Set("keyfile", "key.pem")
		opts.Set("ca_certs", "ca.pem")

		st, err := Assemble(opts, WithEnvLookup(noEnv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.TLS == nil {
			t.Fatalf("expected TLS bundle")
		}
		for _, path := range []string{st.TLS.CertFile, st.TLS.KeyFile, st.TLS.CACerts} {
			if !filepath.IsAbs(path) {
				t.Fatalf("expected absolute path, got %q", path)
			}
		}
	})

	t.Run("ca bundle only when set", func(t *testing.T) {
		opts := options.NewWithDefaults()
		opts.Set("certfile", "cert.pem")
		opts.Set("keyfile", "key.pem")

		st, err := Assemble(opts, WithEnvLookup(noEnv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.TLS == nil || st.TLS.CACerts != "" {
			t.Fatalf("expected TLS bundle without CA path")
		}
	})
}

func TestPrependURL(t *testing.T) {
	cases := []struct {
		url, prefix, want string
	}{
		{"/login", "app", "/app/login"},
		{"/static/", "app", "/app/static/"},
		{"login", "app", "/app/login"},
		{"/login", "/app/", "/app/login"},
	}
	for _, tc := range cases {
		if got := prependURL(tc.url, tc.prefix); got != tc.want {
			t.Fatalf("prependURL(%q, %q) = %q, want %q", tc.url, tc.prefix, got, tc.want)
		}
	}
}
