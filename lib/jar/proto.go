package jar

import (
	"math"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// FromNetwork converts a cookie read from the browser.
func FromNetwork(nc *proto.NetworkCookie) Cookie {
	c := Cookie{
		Name:     nc.Name,
		Value:    nc.Value,
		Domain:   nc.Domain,
		Path:     nc.Path,
		Secure:   nc.Secure,
		HTTPOnly: nc.HTTPOnly,
		SameSite: normalizeSameSite(string(nc.SameSite)),
	}
	if !nc.Session && nc.Expires > 0 {
		whole, frac := math.Modf(float64(nc.Expires))
		t := time.Unix(int64(whole), int64(frac*1e9)).UTC()
		c.Expires = &t
	}
	return c
}

// FromNetworkAll converts every cookie in list.
func FromNetworkAll(list []*proto.NetworkCookie) []Cookie {
	out := make([]Cookie, 0, len(list))
	for _, nc := range list {
		if nc == nil {
			continue
		}
		out = append(out, FromNetwork(nc))
	}
	return out
}

// Param converts c for Network.setCookies. A cookie without a domain is bound
// to fallbackURL.
func (c Cookie) Param(fallbackURL string) *proto.NetworkCookieParam {
	p := &proto.NetworkCookieParam{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
		SameSite: proto.NetworkCookieSameSite(c.SameSite),
	}
	if c.Domain == "" {
		p.URL = fallbackURL
	}
	if c.Expires != nil {
		p.Expires = proto.TimeSinceEpoch(c.Expires.Unix())
	}
	return p
}
