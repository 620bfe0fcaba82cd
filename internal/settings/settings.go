// Package settings assembles the final immutable Settings object from the
// resolved option store: the compiled auth rule, the OAuth credential triple,
// URL-prefix derivations, and the TLS file-path bundle. Assembly happens
// exactly once per process lifetime; the result is read-only afterwards.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eugenenazirov/flower/internal/auth"
	"github.com/eugenenazirov/flower/internal/options"
)

// Environment fallbacks for the OAuth credential triple. These are read here
// at assembly time, independently of the generic environment overlay.
const (
	envOAuth2Key         = "FLOWER_OAUTH2_KEY"
	envOAuth2Secret      = "FLOWER_OAUTH2_SECRET"
	envOAuth2RedirectURI = "FLOWER_OAUTH2_REDIRECT_URI"
)

// OAuth is the credential triple used by the OAuth2 login flow.
type OAuth struct {
	Key         string
	Secret      string
	RedirectURI string
}

// TLSPaths bundles the absolute TLS file paths. Present only when both a
// certificate and a key are configured; CACerts only when also configured.
type TLSPaths struct {
	CertFile string
	KeyFile  string
	CACerts  string
}

// Settings is the assembled configuration handed once to the web runtime.
type Settings struct {
	Options *options.Options

	Debug           bool
	Address         string
	Port            int
	UnixSocket      string
	URLPrefix       string
	LoginURL        string
	StaticURLPrefix string
	CookieSecret    string
	BasicAuth       []string
	XHeaders        bool

	// AuthRule is nil when the auth option is unset (authorization disabled).
	AuthRule auth.Rule
	// OAuth is non-nil only when the auth option is set.
	OAuth *OAuth
	TLS   *TLSPaths
}

// Option configures Assemble behaviour.
type Option func(*assembler)

type assembler struct {
	lookupEnv func(string) string
}

// WithEnvLookup overrides the environment lookup used for the OAuth
// fallbacks, primarily for tests.
func WithEnvLookup(lookup func(string) string) Option {
	return func(a *assembler) {
		a.lookupEnv = lookup
	}
}

// Assemble builds the Settings object from a resolved option store.
func Assemble(opts *options.Options, assembleOpts ...Option) (*Settings, error) {
	a := assembler{lookupEnv: os.Getenv}
	for _, opt := range assembleOpts {
		opt(&a)
	}

	s := &Settings{
		Options:         opts,
		Debug:           opts.Bool("debug"),
		Address:         opts.Str("address"),
		Port:            opts.Int("port"),
		UnixSocket:      opts.Str("unix_socket"),
		URLPrefix:       opts.Str("url_prefix"),
		LoginURL:        opts.Str("login_url"),
		StaticURLPrefix: opts.Str("static_url_prefix"),
		CookieSecret:    opts.Str("cookie_secret"),
		BasicAuth:       opts.Strings("basic_auth"),
		XHeaders:        opts.Bool("xheaders"),
	}

	if s.URLPrefix != "" {
		s.LoginURL = prependURL(s.LoginURL, s.URLPrefix)
		s.StaticURLPrefix = prependURL(s.StaticURLPrefix, s.URLPrefix)
	}

	directive := opts.Str("auth")
	rule, err := auth.Compile(directive, opts.Str("auth_regex"))
	if err != nil {
		return nil, err
	}
	s.AuthRule = rule

	if directive != "" {
		s.OAuth = &OAuth{
			Key:         fallback(opts.Str("oauth2_key"), a.lookupEnv(envOAuth2Key)),
			Secret:      fallback(opts.Str("oauth2_secret"), a.lookupEnv(envOAuth2Secret)),
			RedirectURI: fallback(opts.Str("oauth2_redirect_uri"), a.lookupEnv(envOAuth2RedirectURI)),
		}
	}

	if cert, key := opts.Str("certfile"), opts.Str("keyfile"); cert != "" && key != "" {
		tls := &TLSPaths{}
		if tls.CertFile, err = absPath(cert); err != nil {
			return nil, err
		}
		if tls.KeyFile, err = absPath(key); err != nil {
			return nil, err
		}
		if ca := opts.Str("ca_certs"); ca != "" {
			if tls.CACerts, err = absPath(ca); err != nil {
				return nil, err
			}
		}
		s.TLS = tls
	}

	return s, nil
}

// prependURL joins a configured URL path under the URL prefix, preserving any
// trailing slash on the original path.
func prependURL(url, prefix string) string {
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return "/" + strings.Trim(prefix, "/") + url
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}

func fallback(value, alternative string) string {
	if value != "" {
		return value
	}
	return alternative
}
