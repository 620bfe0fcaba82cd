// Package auth compiles the human-authored auth directive into a single
// machine-checkable rule: either an explicit allow-list of identities or a
// compiled pattern covering a wildcarded set of identities. The two outcomes
// are mutually exclusive concrete types behind the Rule interface.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrShapeConflict is returned when the auth directive mixes incompatible
// syntaxes or places the wildcard anywhere but the start of the string.
var ErrShapeConflict = errors.New("invalid auth directive")

// Allowed characters for the local part of an email address.
const localPartClass = "[A-Za-z0-9!#$%&'*+/=?^_`{|}~.\\-]+"

// Rule decides whether an authenticated identity is authorized.
type Rule interface {
	Allows(email string) bool
}

// EmailList authorizes exact identities only.
type EmailList struct {
	emails map[string]struct{}
}

// NewEmailList builds an allow-list from the given identities.
func NewEmailList(emails ...string) EmailList {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		set[email] = struct{}{}
	}
	return EmailList{emails: set}
}

// Allows reports whether email is a member of the allow-list.
func (l EmailList) Allows(email string) bool {
	_, ok := l.emails[email]
	return ok
}

// Emails returns the allow-list members in sorted order.
func (l EmailList) Emails() []string {
	out := make([]string, 0, len(l.emails))
	for email := range l.emails {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

// Pattern authorizes identities matching a compiled regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// Allows reports whether email matches the pattern.
func (p Pattern) Allows(email string) bool {
	return p.re.MatchString(email)
}

// Regexp exposes the compiled expression, primarily for logging.
func (p Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// Compile turns the auth directive (and the raw authRegex escape hatch) into
// a Rule. An unset directive yields a nil Rule, meaning authorization is
// disabled. When authRegex is set it takes absolute precedence and is
// compiled verbatim; otherwise the directive is interpreted, in order, as a
// pipe-separated allow-list, a .*@domain wildcard, or a single identity.
func Compile(directive, authRegex string) (Rule, error) {
	if directive == "" {
		return nil, nil
	}

	if authRegex != "" {
		re, err := regexp.Compile(authRegex)
		if err != nil {
			return nil, fmt.Errorf("compile auth_regex: %w", err)
		}
		return Pattern{re: re}, nil
	}

	hasPipe := strings.Contains(directive, "|")
	hasWildcard := strings.Contains(directive, ".*")

	switch {
	case hasPipe:
		if hasWildcard {
			return nil, fmt.Errorf("%w: auth allows wildcard or pipe, not both", ErrShapeConflict)
		}
		return NewEmailList(strings.Split(directive, "|")...), nil

	case hasWildcard:
		if strings.Count(directive, ".*") != 1 {
			return nil, fmt.Errorf("%w: auth allows exactly one wildcard, use auth_regex instead", ErrShapeConflict)
		}
		if !strings.HasPrefix(directive, ".*@") {
			return nil, fmt.Errorf("%w: auth wildcard must start the directive, immediately before @domain", ErrShapeConflict)
		}
		domain := regexp.QuoteMeta(directive[len(".*@"):])
		re, err := regexp.Compile(`\A` + localPartClass + "@" + domain + `\z`)
		if err != nil {
			return nil, fmt.Errorf("compile auth wildcard: %w", err)
		}
		return Pattern{re: re}, nil

	default:
		return NewEmailList(directive), nil
	}
}
