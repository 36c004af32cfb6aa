// Package jar persists browser session cookies to disk and converts them to and
// from the devtools protocol types.
//
// The native format is one cookie per line:
//
//	name;value;domain;path;expiry;secure
//
// Files whose name ends in ".json" use a JSON array instead, which also keeps
// the HttpOnly and SameSite attributes.
package jar

import (
	"errors"
	"fmt"
	"time"
)

// SameSite is the cookie SameSite attribute.
type SameSite string

const (
	// SameSiteNone is SameSite=None.
	SameSiteNone SameSite = "None"
	// SameSiteLax is SameSite=Lax.
	SameSiteLax SameSite = "Lax"
	// SameSiteStrict is SameSite=Strict.
	SameSiteStrict SameSite = "Strict"
)

// Cookie is a single stored cookie.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite SameSite

	// Expires is nil for a session cookie.
	Expires *time.Time
}

// Expired reports whether the cookie has an expiry before now.
func (c Cookie) Expired(now time.Time) bool {
	return c.Expires != nil && c.Expires.Before(now)
}

var (
	// ErrFieldCount is returned for a line that does not have exactly six fields.
	ErrFieldCount = errors.New("jar: want 6 fields")
	// ErrDelimiter is returned when a cookie field contains the field or record separator.
	ErrDelimiter = errors.New("jar: field contains ';' or a line break")
	// ErrEmptyName is returned for a cookie without a name.
	ErrEmptyName = errors.New("jar: empty cookie name")
)

// SyntaxError reports a malformed line in a cookie file.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jar: line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func normalizeSameSite(v string) SameSite {
	switch v {
	case "Strict", "strict":
		return SameSiteStrict
	case "Lax", "lax":
		return SameSiteLax
	case "None", "none", "no_restriction", "NoRestriction":
		return SameSiteNone
	default:
		return ""
	}
}
