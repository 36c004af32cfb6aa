package jar

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// FilterOptions controls Filter.
type FilterOptions struct {
	// Origins are URLs a cookie must be sendable to. Empty keeps every host.
	Origins []string

	IncludeExpired bool

	// Now defaults to time.Now().
	Now time.Time
}

type origin struct {
	scheme string
	host   string
	path   string
}

// Filter returns the cookies that match at least one origin and are not
// expired. Kept cookies get a "/" path when empty; the domain is left as
// stored so host-only and domain cookies stay distinct.
func Filter(cookies []Cookie, opts FilterOptions) ([]Cookie, error) {
	origins, err := parseOrigins(opts.Origins)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		if !opts.IncludeExpired && c.Expired(now) {
			continue
		}
		if len(origins) > 0 && !matchesAny(c, origins) {
			continue
		}
		if c.Path == "" {
			c.Path = "/"
		}
		out = append(out, c)
	}
	return out, nil
}

// Dedupe keeps the first cookie for every (name, domain, path).
func Dedupe(cookies []Cookie) []Cookie {
	seen := make(map[string]struct{}, len(cookies))
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		key := c.Name + "\x00" + normalizeHost(c.Domain) + "\x00" + normalizePath(c.Path)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func parseOrigins(list []string) ([]origin, error) {
	out := make([]origin, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Hostname() == "" {
			return nil, errors.New("jar: origin must include scheme and host: " + s)
		}
		out = append(out, origin{
			scheme: strings.ToLower(u.Scheme),
			host:   normalizeHost(u.Hostname()),
			path:   normalizePath(u.EscapedPath()),
		})
	}
	return out, nil
}

func matchesAny(c Cookie, origins []origin) bool {
	for _, o := range origins {
		if matches(c, o) {
			return true
		}
	}
	return false
}

func matches(c Cookie, o origin) bool {
	if c.Domain == "" {
		return false
	}
	if !domainMatch(o.host, c.Domain) {
		return false
	}
	if c.Secure && o.scheme != "https" && o.scheme != "wss" {
		return false
	}
	return pathMatch(o.path, c.Path)
}

func domainMatch(host, domain string) bool {
	host = normalizeHost(host)
	domain = normalizeHost(domain)
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func pathMatch(reqPath, cookiePath string) bool {
	reqPath = normalizePath(reqPath)
	cookiePath = normalizePath(cookiePath)
	switch {
	case cookiePath == "/", reqPath == cookiePath:
		return true
	case !strings.HasPrefix(reqPath, cookiePath):
		return false
	case strings.HasSuffix(cookiePath, "/"):
		return true
	default:
		return reqPath[len(cookiePath)] == '/'
	}
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, ".")
	return strings.ToLower(host)
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p[0] != '/' {
		return "/"
	}
	return p
}
