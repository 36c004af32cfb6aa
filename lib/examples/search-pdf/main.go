// Package main ...
package main

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/utils"
	"github.com/xyjwsj/tweetgrab"
	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/xyjwsj/tweetgrab/lib/post"
)

func main() {
	cfg := config.Default()
	cfg.Headless = true

	cookies, err := jar.Load(cfg.CookieFile)
	utils.E(err)

	ctx := context.Background()
	s := tweetgrab.MustOpen(cfg, nil)
	defer s.MustClose()

	s.MustRestore(ctx, cookies)
	n := s.MustSearch(ctx, func(post.Post) {})

	s.Page().MustPDF("search.pdf")
	fmt.Printf("wrote search.pdf with %d results\n", n)
}
