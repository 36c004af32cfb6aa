// Package main restores a saved session, runs the configured search, and
// writes the text of every result to the output file and stdout.
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
	"github.com/xyjwsj/tweetgrab/lib/post"
	"github.com/xyjwsj/tweetgrab/lib/store"
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
		log.Error("scrape failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) (err error) {
	cookies, err := jar.Load(cfg.CookieFile)
	if err != nil {
		return err
	}
	log.Info("cookies loaded", zap.String("file", cfg.CookieFile), zap.Int("count", len(cookies)))

	s, err := tweetgrab.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("closing browser", zap.Error(err))
		}
	}()

	if _, err := s.Restore(ctx, cookies); err != nil {
		return err
	}

	// the output file is only truncated once the session is usable
	text, err := post.CreateText(cfg.OutputFile, cfg.AppendOutput)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, text.Close()) }()

	sinks := []post.Sink{text, post.ConsoleSink{W: os.Stdout}}

	if cfg.StorePath != "" {
		st, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Warn("closing archive", zap.Error(err))
			}
		}()
		sinks = append(sinks, st.Sink(ctx, cfg.Query))
	}

	b := post.NewBroadcast(ctx, sinks...)
	_, searchErr := s.Search(ctx, b.Publish)
	if err := errors.Join(searchErr, b.Close()); err != nil {
		return err
	}

	log.Info("results written", zap.String("file", cfg.OutputFile), zap.Int("count", text.Count()))
	return nil
}
