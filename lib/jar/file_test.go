package jar_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/ysmood/got"
)

func TestSaveLoad(t *testing.T) {
	g := got.T(t)
	dir := t.TempDir()

	exp := time.Unix(1798859045, 0).UTC()
	cookies := []jar.Cookie{
		{Name: "auth_token", Value: "abc", Domain: ".twitter.com", Path: "/", Secure: true, Expires: &exp},
	}

	for _, name := range []string{"twitter_cookies.data", "nested/cookies.json"} {
		p := filepath.Join(dir, name)
		g.Nil(jar.Save(p, cookies))

		info, err := os.Stat(p)
		g.Nil(err)
		g.Eq(info.Mode().Perm(), os.FileMode(0o600))

		out, err := jar.Load(p)
		g.Nil(err)
		g.Eq(out, cookies)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "twitter_cookies.data"))
	g.Nil(err)
	g.Eq(string(raw), "auth_token;abc;.twitter.com;/;1798859045;true\n")
}

func TestSaveTruncates(t *testing.T) {
	g := got.T(t)
	p := filepath.Join(t.TempDir(), "c.data")

	g.Nil(jar.Save(p, []jar.Cookie{{Name: "a"}, {Name: "b"}}))
	g.Nil(jar.Save(p, []jar.Cookie{{Name: "c"}}))

	out, err := jar.Load(p)
	g.Nil(err)
	g.Len(out, 1)
	g.Eq(out[0].Name, "c")
}

func TestLoadMissing(t *testing.T) {
	g := got.T(t)

	_, err := jar.Load(filepath.Join(t.TempDir(), "nope.data"))
	g.True(os.IsNotExist(err))
}

func TestNetworkConversion(t *testing.T) {
	g := got.T(t)

	c := jar.FromNetwork(&proto.NetworkCookie{
		Name: "auth_token", Value: "abc", Domain: ".twitter.com", Path: "/",
		Expires: 1798859045.5, Secure: true, HTTPOnly: true,
		SameSite: proto.NetworkCookieSameSiteNone,
	})
	g.Eq(c.SameSite, jar.SameSiteNone)
	g.True(c.Expires.Equal(time.Unix(1798859045, 5e8)))

	session := jar.FromNetwork(&proto.NetworkCookie{Name: "s", Expires: -1, Session: true})
	g.True(session.Expires == nil)

	p := c.Param("https://twitter.com")
	g.Eq(p.Domain, ".twitter.com")
	g.Eq(p.URL, "")
	g.Eq(p.Expires, proto.TimeSinceEpoch(1798859045))
	g.Eq(p.SameSite, proto.NetworkCookieSameSiteNone)

	p = jar.Cookie{Name: "x"}.Param("https://twitter.com")
	g.Eq(p.URL, "https://twitter.com")
	g.Eq(p.Expires, proto.TimeSinceEpoch(0))

	all := jar.FromNetworkAll([]*proto.NetworkCookie{nil, {Name: "a"}})
	g.Len(all, 1)
}
