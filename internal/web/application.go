package web

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/flower/internal/settings"
)

// App encapsulates the monitoring HTTP server built from the assembled
// settings.
type App struct {
	settings *settings.Settings
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New wires the handler, router, and HTTP server from the provided settings.
func New(st *settings.Settings, logger *zap.Logger) (*App, error) {
	handler := NewHandler(st)
	router := NewRouter(handler, st, logger)

	server := &http.Server{
		Addr:              listenAddr(st),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if st.TLS != nil {
		tlsConfig, err := buildTLSConfig(st.TLS)
		if err != nil {
			return nil, err
		}
		server.TLSConfig = tlsConfig
	}

	return &App{
		settings: st,
		router:   router,
		logger:   logger,
		server:   server,
	}, nil
}

// Start prints the startup banner and begins serving in a goroutine.
func (a *App) Start() error {
	a.printBanner()

	serve := func() error {
		st := a.settings
		if st.UnixSocket != "" {
			listener, err := net.Listen("unix", st.UnixSocket)
			if err != nil {
				return fmt.Errorf("listen on unix socket %s: %w", st.UnixSocket, err)
			}
			return a.server.Serve(listener)
		}
		if st.TLS != nil {
			return a.server.ListenAndServeTLS(st.TLS.CertFile, st.TLS.KeyFile)
		}
		return a.server.ListenAndServe()
	}

	go func() {
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

func (a *App) printBanner() {
	st := a.settings
	if st.UnixSocket != "" {
		a.logger.Info("Visit me via unix socket file", zap.String("path", st.UnixSocket))
		return
	}

	scheme := "http"
	if st.TLS != nil {
		scheme = "https"
	}
	host := st.Address
	if host == "" {
		host = "localhost"
	}
	prefix := ""
	if st.URLPrefix != "" {
		prefix = "/" + strings.Trim(st.URLPrefix, "/") + "/"
	}
	a.logger.Info("Visit me at " + fmt.Sprintf("%s://%s:%d%s", scheme, host, st.Port, prefix))
}

func listenAddr(st *settings.Settings) string {
	return fmt.Sprintf("%s:%d", st.Address, st.Port)
}

// buildTLSConfig adds client certificate verification when a CA bundle is
// configured; the certificate and key themselves are loaded by
// ListenAndServeTLS.
func buildTLSConfig(paths *settings.TLSPaths) (*tls.Config, error) {
	if paths.CACerts == "" {
		return nil, nil
	}

	pem, err := os.ReadFile(paths.CACerts)
	if err != nil {
		return nil, fmt.Errorf("read CA bundle %s: %w", paths.CACerts, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("CA bundle %s contains no usable certificates", paths.CACerts)
	}

	return &tls.Config{
		ClientCAs:  pool,
		ClientAuth: tls.RequireAndVerifyClientCert,
	}, nil
}
