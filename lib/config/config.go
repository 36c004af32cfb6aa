// Package config resolves the settings shared by the commands.
//
// Values are layered, later layers win: defaults, the ini file, the .env file,
// TWEETGRAB_* environment variables, and explicitly set command line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultFile is the ini file read when no -config flag is given.
const DefaultFile = "tweetgrab.ini"

// Config is the full set of knobs.
type Config struct {
	BaseURL  string
	LoginURL string

	CookieFile    string
	LoginWait     time.Duration
	LoginSelector string
	PromptLogin   bool

	Query          string
	Latest         bool
	ItemSelector   string
	ReadyTimeout   time.Duration
	Scrolls        int
	ScrollDelay    time.Duration
	SettleWindow   time.Duration
	IncludeExpired bool

	OutputFile   string
	AppendOutput bool
	StorePath    string

	BrowserBin  string
	Headless    bool
	NoSandbox   bool
	UserDataDir string
	ControlURL  string
	Leakless    bool
	Stealth     bool

	LogLevel  string
	LogFormat string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:  "https://twitter.com",
		LoginURL: "https://twitter.com/login",

		CookieFile: "twitter_cookies.data",
		LoginWait:  30 * time.Second,

		Query:        "#whatsapp",
		ItemSelector: "article",
		ReadyTimeout: 30 * time.Second,
		Scrolls:      1,
		ScrollDelay:  10 * time.Second,

		OutputFile: "tweets.txt",

		Leakless: true,

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// SearchURL is the results page for the configured query.
func (c *Config) SearchURL() string {
	u := strings.TrimRight(c.BaseURL, "/") + "/search?q=" + url.QueryEscape(c.Query) + "&src=typed_query"
	if c.Latest {
		u += "&f=live"
	}
	return u
}

// Validate reports an unusable setting.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"base url":      c.BaseURL,
		"login url":     c.LoginURL,
		"cookie file":   c.CookieFile,
		"query":         c.Query,
		"item selector": c.ItemSelector,
		"output file":   c.OutputFile,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("config: %s must not be empty", name)
		}
	}

	for name, v := range map[string]string{"base url": c.BaseURL, "login url": c.LoginURL} {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: %s %q must be an absolute URL", name, v)
		}
	}

	for name, d := range map[string]time.Duration{
		"login wait":    c.LoginWait,
		"ready timeout": c.ReadyTimeout,
		"scroll delay":  c.ScrollDelay,
		"settle window": c.SettleWindow,
	} {
		if d < 0 {
			return fmt.Errorf("config: %s must not be negative", name)
		}
	}
	if c.ReadyTimeout == 0 {
		return errors.New("config: ready timeout must be positive")
	}
	if c.Scrolls < 0 {
		return errors.New("config: scrolls must not be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
