// Package web is the monitoring web runtime. It consumes the assembled
// Settings object and contributes no configuration decisions of its own: it
// wires the HTTP server (TCP, unix socket, or TLS), the router and its
// middleware, and the startup banner.
package web
