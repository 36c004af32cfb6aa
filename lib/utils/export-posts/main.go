// Package main writes the archived posts as CSV.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/logger"
	"github.com/xyjwsj/tweetgrab/lib/post"
	"github.com/xyjwsj/tweetgrab/lib/store"
	"go.uber.org/zap"
)

func main() {
	var out string
	var all bool
	cfg, err := config.Parse(os.Args[0], os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&out, "o", "", "csv file, stdout when empty")
		fs.BoolVar(&all, "all", false, "export every query, not only -query")
	})
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

	query := cfg.Query
	if all {
		query = ""
	}
	if err := run(context.Background(), cfg.StorePath, query, out, log); err != nil {
		log.Error("export failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(ctx context.Context, archive, query, out string, log *zap.Logger) (err error) {
	if archive == "" {
		return errors.New("no archive configured, set -store")
	}

	st, err := store.Open(archive)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, st.Close()) }()

	posts, err := st.List(ctx, query)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		w = f
	}

	if err := post.WriteCSV(w, posts); err != nil {
		return err
	}
	log.Info("posts exported", zap.String("archive", archive), zap.Int("count", len(posts)))
	return nil
}
