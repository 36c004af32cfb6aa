package tweetgrab

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/ysmood/leakless"
	"go.uber.org/zap"
)

var (
	// ErrNotReady is returned when document.readyState never reaches "complete".
	ErrNotReady = errors.New("tweetgrab: page did not become ready")
	// ErrNoItems is returned when no element matches the result selector in time.
	ErrNoItems = errors.New("tweetgrab: no results appeared")
	// ErrLoginTimeout is returned when the login marker never shows up.
	ErrLoginTimeout = errors.New("tweetgrab: login not detected")
)

// Session owns one browser page for its whole lifetime.
type Session struct {
	cfg *config.Config
	log *zap.Logger

	// nil when attached to a browser started by someone else
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	in  io.Reader
	out io.Writer

	closeOnce sync.Once
	closeErr  error
}

// Option customizes a Session.
type Option func(*Session)

// WithPrompt sets where the login prompt is read from and printed to.
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(s *Session) {
		s.in = in
		s.out = out
	}
}

// Open launches a browser, or attaches to cfg.ControlURL when set, and opens
// a blank page.
func Open(cfg *config.Config, log *zap.Logger, opts ...Option) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, log: log, in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}

	u, err := s.controlURL()
	if err != nil {
		return nil, err
	}

	s.browser = rod.New().ControlURL(u)
	if err := s.browser.Connect(); err != nil {
		s.abort()
		return nil, fmt.Errorf("tweetgrab: connect browser: %w", err)
	}

	if cfg.Stealth {
		s.page, err = stealth.Page(s.browser)
	} else {
		s.page, err = s.browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("tweetgrab: open page: %w", err)
	}

	return s, nil
}

func (s *Session) controlURL() (string, error) {
	if s.cfg.ControlURL != "" {
		u, err := launcher.ResolveURL(s.cfg.ControlURL)
		if err != nil {
			return "", fmt.Errorf("tweetgrab: resolve %s: %w", s.cfg.ControlURL, err)
		}
		s.log.Info("attaching to browser", zap.String("url", u))
		return u, nil
	}

	s.launcher = newLauncher(s.cfg)
	u, err := s.launcher.Launch()
	if err != nil {
		return "", fmt.Errorf("tweetgrab: launch browser: %w", err)
	}
	s.log.Debug("browser launched", zap.String("url", u), zap.Bool("headless", s.cfg.Headless))
	return u, nil
}

func newLauncher(cfg *config.Config) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Leakless(cfg.Leakless && leakless.Support())

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	} else if path, has := launcher.LookPath(); has {
		l = l.Bin(path)
	}
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}
	return l
}

// abort kills a launched browser after a failed connect and removes its
// temporary profile.
func (s *Session) abort() {
	if s.launcher == nil {
		return
	}
	s.launcher.Kill()
	if s.cfg.UserDataDir == "" {
		s.launcher.Cleanup()
	}
}

// Page returns the underlying page.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Close releases the session. A launched browser is shut down and its
// temporary profile removed; an attached browser only loses the page.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.launcher == nil {
			if s.page != nil {
				s.closeErr = s.page.Close()
			}
			return
		}

		if err := s.browser.Close(); err != nil {
			s.closeErr = fmt.Errorf("tweetgrab: close browser: %w", err)
			s.launcher.Kill()
		}
		if s.cfg.UserDataDir == "" {
			s.launcher.Cleanup()
		}
		s.log.Debug("browser closed")
	})
	return s.closeErr
}
