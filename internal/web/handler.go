package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/flower/internal/settings"
)

// Handler serves the monitoring endpoints backed by the immutable Settings.
type Handler struct {
	settings *settings.Settings
	clock    func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler over the assembled settings.
func NewHandler(st *settings.Settings, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: st,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSettings exposes the non-secret subset of the resolved settings.
func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	st := h.settings
	resp := settingsResponse{
		Debug:           st.Debug,
		URLPrefix:       st.URLPrefix,
		StaticURLPrefix: st.StaticURLPrefix,
		MaxTasks:        st.Options.Int("max_tasks"),
		EnableEvents:    st.Options.Bool("enable_events"),
		AutoRefresh:     st.Options.Bool("auto_refresh"),
		NaturalTime:     st.Options.Bool("natural_time"),
		TasksColumns:    st.Options.Strings("tasks_columns"),
		AuthEnabled:     st.AuthRule != nil,
		TLSEnabled:      st.TLS != nil,
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAuthorize checks an identity against the compiled auth rule. With
// authorization disabled every identity is accepted.
func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		email = r.Header.Get("X-Auth-Email")
	}

	rule := h.settings.AuthRule
	if rule != nil && !rule.Allows(email) {
		writeError(w, http.StatusForbidden, "Access denied", "identity is not authorized to access this instance")
		return
	}
	writeJSON(w, http.StatusOK, authorizeResponse{Email: email, Authorized: true})
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type settingsResponse struct {
	Debug           bool     `json:"debug"`
	URLPrefix       string   `json:"urlPrefix,omitempty"`
	StaticURLPrefix string   `json:"staticUrlPrefix"`
	MaxTasks        int      `json:"maxTasks"`
	EnableEvents    bool     `json:"enableEvents"`
	AutoRefresh     bool     `json:"autoRefresh"`
	NaturalTime     bool     `json:"naturalTime"`
	TasksColumns    []string `json:"tasksColumns"`
	AuthEnabled     bool     `json:"authEnabled"`
	TLSEnabled      bool     `json:"tlsEnabled"`
}

type authorizeResponse struct {
	Email      string `json:"email"`
	Authorized bool   `json:"authorized"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
