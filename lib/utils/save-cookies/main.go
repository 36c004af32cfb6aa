// Package main opens the login page, waits for a manual login, and writes the
// session cookies to the cookie file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xyjwsj/tweetgrab"
	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/xyjwsj/tweetgrab/lib/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], nil)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()

	if err != nil {
		log.Error("saving cookies failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	s, err := tweetgrab.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("closing browser", zap.Error(err))
		}
	}()

	cookies, err := s.Login(ctx)
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		log.Warn("no cookies found, was the login finished?")
	}

	if err := jar.Save(cfg.CookieFile, cookies); err != nil {
		return err
	}
	log.Info("cookies saved", zap.String("file", cfg.CookieFile), zap.Int("count", len(cookies)))
	return nil
}
