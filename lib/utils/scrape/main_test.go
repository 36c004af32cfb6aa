package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/ysmood/got"
	"go.uber.org/zap"
)

func TestRunKeepsOutputWhenBrowserFails(t *testing.T) {
	g := got.T(t)
	dir := t.TempDir()

	cfg := config.Default()
	cfg.CookieFile = filepath.Join(dir, "twitter_cookies.data")
	cfg.OutputFile = filepath.Join(dir, "tweets.txt")
	cfg.ControlURL = "127.0.0.1:1"

	g.Nil(jar.Save(cfg.CookieFile, []jar.Cookie{{Name: "auth_token", Value: "a", Domain: ".twitter.com", Path: "/"}}))
	g.Nil(os.WriteFile(cfg.OutputFile, []byte("previous run\n"), 0o644))

	g.Err(run(context.Background(), cfg, zap.NewNop()))

	b, err := os.ReadFile(cfg.OutputFile)
	g.Nil(err)
	g.Eq(string(b), "previous run\n")
}

func TestRunMissingCookies(t *testing.T) {
	g := got.T(t)

	cfg := config.Default()
	cfg.CookieFile = filepath.Join(t.TempDir(), "none.data")
	g.Err(run(context.Background(), cfg, zap.NewNop()))
}
