// Package main starts its own browser and hands the control url to a session,
// so the scrape runs in a browser the caller manages.
package main

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/utils"
	"github.com/xyjwsj/tweetgrab"
	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/xyjwsj/tweetgrab/lib/post"
)

func main() {
	l := launcher.New().Headless(false)
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	// For more info: https://pkg.go.dev/github.com/go-rod/rod/lib/launcher
	u := l.MustLaunch()

	cfg := config.Default()
	cfg.ControlURL = u

	cookies, err := jar.Load(cfg.CookieFile)
	utils.E(err)

	ctx := context.Background()
	s := tweetgrab.MustOpen(cfg, nil)
	s.MustRestore(ctx, cookies)
	s.MustSearch(ctx, func(p post.Post) {
		fmt.Println(post.Line(p.Text))
	})

	// attached sessions only close their page
	s.MustClose()
}
