package tweetgrab

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xyjwsj/tweetgrab/lib/jar"
	"go.uber.org/zap"
)

// Login opens the login page, waits for the user to sign in, and returns the
// cookies that belong to the site.
//
// The wait is the first of: the enter key on the prompt reader when
// PromptLogin is set, LoginSelector appearing when set, or a plain LoginWait
// delay.
func (s *Session) Login(ctx context.Context) ([]jar.Cookie, error) {
	return s.login(ctx, rodTab{s.page.Context(ctx)}, s.browser)
}

func (s *Session) login(ctx context.Context, t tab, store cookieStore) ([]jar.Cookie, error) {
	s.log.Info("opening login page", zap.String("url", s.cfg.LoginURL))
	if err := t.Navigate(s.cfg.LoginURL); err != nil {
		return nil, fmt.Errorf("tweetgrab: open %s: %w", s.cfg.LoginURL, err)
	}
	if err := t.WaitLoad(); err != nil {
		return nil, fmt.Errorf("tweetgrab: load %s: %w", s.cfg.LoginURL, err)
	}

	if err := s.awaitLogin(ctx, t); err != nil {
		return nil, err
	}

	origins := []string{s.cfg.BaseURL, s.cfg.LoginURL}
	if u := t.URL(); strings.HasPrefix(u, "http") {
		origins = append(origins, u)
	}

	cookies, err := readCookies(store, origins)
	if err != nil {
		return nil, err
	}
	s.log.Info("collected cookies", zap.Int("count", len(cookies)))
	return cookies, nil
}

func (s *Session) awaitLogin(ctx context.Context, t tab) error {
	switch {
	case s.cfg.PromptLogin:
		return s.prompt(ctx)

	case s.cfg.LoginSelector != "":
		s.log.Info("waiting for login marker",
			zap.String("selector", s.cfg.LoginSelector),
			zap.Duration("timeout", s.cfg.LoginWait))
		err := t.Element(s.cfg.LoginSelector, s.cfg.LoginWait)
		if err != nil {
			if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%w within %s", ErrLoginTimeout, s.cfg.LoginWait)
			}
			return fmt.Errorf("tweetgrab: wait for %s: %w", s.cfg.LoginSelector, err)
		}
		return nil

	default:
		s.log.Info("log in within the browser window", zap.Duration("wait", s.cfg.LoginWait))
		return sleep(ctx, s.cfg.LoginWait)
	}
}

// prompt blocks until a line is read from the prompt reader.
func (s *Session) prompt(ctx context.Context) error {
	fmt.Fprintln(s.out, "Log in within the browser window, then press Enter here.")

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(s.in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("tweetgrab: read prompt: %w", err)
		}
		return nil
	}
}
