package options

import "strings"

// Type identifies the value type an option accepts.
type Type int

const (
	String Type = iota
	Int
	Bool
	Path
)

// DefaultConfigFile is the well-known configuration file name used when the
// conf option is left unset. A missing file at this name is skipped silently;
// a missing file at any other explicitly named path is fatal.
const DefaultConfigFile = "flowerconfig.toml"

// Spec describes a single recognized option. Multiple marks options whose
// raw value is a comma-separated list coerced element-wise to Type.
type Spec struct {
	Name     string
	Type     Type
	Multiple bool
	Default  any
	Help     string
}

var registry = []Spec{
	{Name: "address", Type: String, Default: "", Help: "Address to listen on"},
	{Name: "port", Type: Int, Default: 5555, Help: "Port to listen on"},
	{Name: "unix_socket", Type: Path, Default: "", Help: "Serve on a unix socket file instead of TCP"},
	{Name: "url_prefix", Type: String, Default: "", Help: "Base URL prefix for all served URLs"},
	{Name: "login_url", Type: String, Default: "/login", Help: "Login URL path"},
	{Name: "static_url_prefix", Type: String, Default: "/static/", Help: "URL prefix for static assets"},
	{Name: "auth", Type: String, Default: "", Help: "Authorization directive: identity, id1|id2|..., or .*@domain"},
	{Name: "auth_regex", Type: String, Default: "", Help: "Raw regular expression overriding the auth directive"},
	{Name: "basic_auth", Type: String, Multiple: true, Default: []string{}, Help: "Comma-separated user:password pairs for HTTP basic auth"},
	{Name: "oauth2_key", Type: String, Default: "", Help: "OAuth2 consumer key"},
	{Name: "oauth2_secret", Type: String, Default: "", Help: "OAuth2 consumer secret"},
	{Name: "oauth2_redirect_uri", Type: String, Default: "", Help: "OAuth2 redirect URI"},
	{Name: "certfile", Type: Path, Default: "", Help: "Path to the TLS certificate file"},
	{Name: "keyfile", Type: Path, Default: "", Help: "Path to the TLS private key file"},
	{Name: "ca_certs", Type: Path, Default: "", Help: "Path to the CA certificate bundle"},
	{Name: "cookie_secret", Type: String, Default: "", Help: "Secret used to sign session cookies"},
	{Name: "conf", Type: Path, Default: DefaultConfigFile, Help: "Path to the configuration file"},
	{Name: "debug", Type: Bool, Default: false, Help: "Enable debug mode"},
	{Name: "persistent", Type: Bool, Default: false, Help: "Persist monitoring state between restarts"},
	{Name: "db", Type: Path, Default: "flower.db", Help: "Path to the persistent state database"},
	{Name: "max_tasks", Type: Int, Default: 10000, Help: "Maximum number of tasks kept in memory"},
	{Name: "enable_events", Type: Bool, Default: true, Help: "Periodically enable worker task events"},
	{Name: "auto_refresh", Type: Bool, Default: true, Help: "Refresh dashboards automatically"},
	{Name: "natural_time", Type: Bool, Default: false, Help: "Show timestamps relative to now"},
	{Name: "tasks_columns", Type: String, Multiple: true,
		Default: []string{"name", "uuid", "state", "args", "kwargs", "result", "received", "started", "runtime", "worker"},
		Help:    "Comma-separated columns shown on the tasks page"},
	{Name: "broker_api", Type: String, Default: "", Help: "Broker management API URL"},
	{Name: "xheaders", Type: Bool, Default: false, Help: "Trust X-Forwarded-* proxy headers"},
}

var registryByName = buildIndex()

func buildIndex() map[string]Spec {
	index := make(map[string]Spec, len(registry))
	for _, spec := range registry {
		if !conforms(spec, spec.Default) {
			panic("options: default for " + spec.Name + " does not conform to its declared type")
		}
		index[spec.Name] = spec
	}
	return index
}

// Canonical normalizes an option name to registry form: lower-case with
// dashes converted to underscores.
func Canonical(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// Lookup returns the Spec registered under the given canonical name.
func Lookup(name string) (Spec, bool) {
	spec, ok := registryByName[name]
	return spec, ok
}

// All returns every registered Spec in declaration order.
func All() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}
