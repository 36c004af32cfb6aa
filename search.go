package tweetgrab

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/xyjwsj/tweetgrab/lib/post"
	"go.uber.org/zap"
)

// Restore opens the site root and installs cookies into the browser so later
// navigation is authenticated. Expired cookies are dropped unless
// IncludeExpired is set. It returns how many cookies were installed.
func (s *Session) Restore(ctx context.Context, cookies []jar.Cookie) (int, error) {
	return s.restore(rodTab{s.page.Context(ctx)}, s.browser, cookies)
}

func (s *Session) restore(t tab, store cookieStore, cookies []jar.Cookie) (int, error) {
	if err := t.Navigate(s.cfg.BaseURL); err != nil {
		return 0, fmt.Errorf("tweetgrab: open %s: %w", s.cfg.BaseURL, err)
	}
	if err := t.WaitLoad(); err != nil {
		return 0, fmt.Errorf("tweetgrab: load %s: %w", s.cfg.BaseURL, err)
	}

	n, err := writeCookies(store, cookies, s.cfg.BaseURL, s.cfg.IncludeExpired, time.Now())
	if err != nil {
		return 0, err
	}
	if skipped := len(cookies) - n; skipped > 0 {
		s.log.Info("skipped cookies", zap.Int("count", skipped))
	}
	s.log.Info("restored cookies", zap.Int("count", n))
	return n, nil
}

// Search opens the results page for the configured query, scrolls it, and
// calls emit once for every element matching ItemSelector, in page order.
// It returns the number of posts emitted.
func (s *Session) Search(ctx context.Context, emit func(post.Post)) (int, error) {
	page := s.page.Context(ctx)
	t := rodTab{page}
	target := s.cfg.SearchURL()
	sel := s.cfg.ItemSelector

	s.log.Info("opening search", zap.String("url", target))
	if err := t.Navigate(target); err != nil {
		return 0, fmt.Errorf("tweetgrab: open %s: %w", target, err)
	}
	if err := waitReady(ctx, t, s.cfg.ReadyTimeout); err != nil {
		return 0, err
	}

	for i := 0; i < s.cfg.Scrolls; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return 0, fmt.Errorf("tweetgrab: scroll: %w", err)
		}
		n, err := settle(ctx, s.cfg.ScrollDelay, s.cfg.SettleWindow, pollInterval, func() (int, error) {
			return countItems(page, sel)
		})
		if err != nil {
			return 0, err
		}
		s.log.Debug("scrolled", zap.Int("round", i+1), zap.Int("items", n))
	}

	if err := waitItems(ctx, t, sel, s.cfg.ReadyTimeout); err != nil {
		return 0, err
	}

	els, err := page.Elements(sel)
	if err != nil {
		return 0, fmt.Errorf("tweetgrab: query %s: %w", sel, err)
	}

	count := 0
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			s.log.Warn("unreadable result", zap.Error(err))
			continue
		}
		html, err := el.HTML()
		if err != nil {
			html = ""
		}
		emit(post.Parse(text, html, target))
		count++
	}

	s.log.Info("scraped results", zap.Int("count", count), zap.String("query", s.cfg.Query))
	return count, nil
}

const readyJS = `() => document.readyState === "complete"`

func waitReady(ctx context.Context, t tab, timeout time.Duration) error {
	err := t.Wait(readyJS, timeout)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w within %s", ErrNotReady, timeout)
	}
	return fmt.Errorf("tweetgrab: wait for ready state: %w", err)
}

func waitItems(ctx context.Context, t tab, sel string, timeout time.Duration) error {
	err := t.Element(sel, timeout)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w for %q within %s", ErrNoItems, sel, timeout)
	}
	return fmt.Errorf("tweetgrab: wait for %s: %w", sel, err)
}

func countItems(page *rod.Page, sel string) (int, error) {
	res, err := page.Eval(`s => document.querySelectorAll(s).length`, sel)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}
