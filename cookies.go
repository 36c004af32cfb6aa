package tweetgrab

import (
	"fmt"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/xyjwsj/tweetgrab/lib/jar"
)

// cookieStore is the part of *rod.Browser the jar needs.
type cookieStore interface {
	GetCookies() ([]*proto.NetworkCookie, error)
	SetCookies([]*proto.NetworkCookieParam) error
}

// readCookies returns the browser cookies that apply to any of origins.
func readCookies(b cookieStore, origins []string) ([]jar.Cookie, error) {
	list, err := b.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("tweetgrab: get cookies: %w", err)
	}

	cookies, err := jar.Filter(jar.FromNetworkAll(list), jar.FilterOptions{
		Origins:        origins,
		IncludeExpired: true,
	})
	if err != nil {
		return nil, err
	}
	return jar.Dedupe(cookies), nil
}

// writeCookies installs cookies into the browser. Cookies without a domain are
// bound to fallbackURL. It returns how many were installed.
func writeCookies(b cookieStore, cookies []jar.Cookie, fallbackURL string, includeExpired bool, now time.Time) (int, error) {
	kept, err := jar.Filter(cookies, jar.FilterOptions{IncludeExpired: includeExpired, Now: now})
	if err != nil {
		return 0, err
	}
	kept = jar.Dedupe(kept)
	if len(kept) == 0 {
		return 0, nil
	}

	params := make([]*proto.NetworkCookieParam, 0, len(kept))
	for _, c := range kept {
		params = append(params, c.Param(fallbackURL))
	}
	if err := b.SetCookies(params); err != nil {
		return 0, fmt.Errorf("tweetgrab: set cookies: %w", err)
	}
	return len(kept), nil
}
