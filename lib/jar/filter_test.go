package jar_test

import (
	"testing"
	"time"

	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/ysmood/got"
)

func names(cookies []jar.Cookie) []string {
	out := make([]string, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, c.Name)
	}
	return out
}

func TestFilterOrigins(t *testing.T) {
	g := got.T(t)

	cookies := []jar.Cookie{
		{Name: "auth", Domain: ".twitter.com", Path: "/", Secure: true},
		{Name: "ct0", Domain: "twitter.com", Path: ""},
		{Name: "api", Domain: "api.twitter.com", Path: "/"},
		{Name: "ga", Domain: ".google.com", Path: "/"},
		{Name: "deep", Domain: "twitter.com", Path: "/settings"},
		{Name: "", Domain: "twitter.com"},
	}

	out, err := jar.Filter(cookies, jar.FilterOptions{Origins: []string{"https://twitter.com/login"}})
	g.Nil(err)
	g.Eq(names(out), []string{"auth", "ct0"})
	g.Eq(out[1].Path, "/")
	g.Eq(out[0].Domain, ".twitter.com")

	out, err = jar.Filter(cookies, jar.FilterOptions{Origins: []string{"http://twitter.com/"}})
	g.Nil(err)
	g.Eq(names(out), []string{"ct0"})

	out, err = jar.Filter(cookies, jar.FilterOptions{Origins: []string{"https://api.twitter.com/"}})
	g.Nil(err)
	g.Eq(names(out), []string{"auth", "ct0", "api"})

	out, err = jar.Filter(cookies, jar.FilterOptions{Origins: []string{"https://twitter.com/settings/account"}})
	g.Nil(err)
	g.Eq(names(out), []string{"auth", "ct0", "deep"})

	out, err = jar.Filter(cookies, jar.FilterOptions{})
	g.Nil(err)
	g.Len(out, 5)

	_, err = jar.Filter(cookies, jar.FilterOptions{Origins: []string{"twitter.com"}})
	g.Err(err)
}

func TestFilterExpiry(t *testing.T) {
	g := got.T(t)

	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	cookies := []jar.Cookie{
		{Name: "old", Expires: &past},
		{Name: "new", Expires: &future},
		{Name: "session"},
	}

	out, err := jar.Filter(cookies, jar.FilterOptions{Now: now})
	g.Nil(err)
	g.Eq(names(out), []string{"new", "session"})

	out, err = jar.Filter(cookies, jar.FilterOptions{Now: now, IncludeExpired: true})
	g.Nil(err)
	g.Len(out, 3)
}

func TestDedupeKeepsFirst(t *testing.T) {
	g := got.T(t)

	out := jar.Dedupe([]jar.Cookie{
		{Name: "a", Domain: ".example.com", Path: "/", Value: "1"},
		{Name: "a", Domain: "example.com", Path: "", Value: "2"},
		{Name: "a", Domain: "example.com", Path: "/x", Value: "3"},
	})
	g.Len(out, 2)
	g.Eq(out[0].Value, "1")
	g.Eq(out[1].Value, "3")
}
