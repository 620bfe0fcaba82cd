package options

import "errors"

// ErrBadValue is returned when a raw value cannot be coerced to the option's
// declared type. Coercion failures abort startup.
var ErrBadValue = errors.New("invalid option value")
