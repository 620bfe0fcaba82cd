// Package options defines the static catalog of every recognized runtime
// option (name, value type, multiplicity, default) and the typed store that
// holds the resolved values. Option names are canonicalized to lower-case,
// underscore-separated form; overlays in internal/config consult the catalog
// to decide which raw keys are recognized and how to coerce their values.
package options
