package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "TWEETGRAB_"

// setting binds one Config field to its ini key, env variable and flag.
type setting struct {
	section string
	key     string
	env     string
	flag    string
	usage   string
	ptr     interface{}
}

func (c *Config) settings() []setting {
	return []setting{
		{"site", "base_url", "BASE_URL", "base-url", "site root", &c.BaseURL},
		{"site", "login_url", "LOGIN_URL", "login-url", "login page", &c.LoginURL},

		{"login", "cookie_file", "COOKIE_FILE", "cookies", "cookie file (.json for JSON)", &c.CookieFile},
		{"login", "wait", "LOGIN_WAIT", "login-wait", "time allowed for manual login", &c.LoginWait},
		{"login", "selector", "LOGIN_SELECTOR", "login-selector", "element that marks a finished login", &c.LoginSelector},
		{"login", "prompt", "LOGIN_PROMPT", "prompt", "wait for Enter instead of a fixed delay", &c.PromptLogin},

		{"scrape", "query", "QUERY", "query", "search query", &c.Query},
		{"scrape", "latest", "LATEST", "latest", "open the Latest tab", &c.Latest},
		{"scrape", "item_selector", "ITEM_SELECTOR", "selector", "CSS selector of a result", &c.ItemSelector},
		{"scrape", "ready_timeout", "READY_TIMEOUT", "ready-timeout", "page ready and result wait", &c.ReadyTimeout},
		{"scrape", "scrolls", "SCROLLS", "scrolls", "number of scrolls to the bottom", &c.Scrolls},
		{"scrape", "scroll_delay", "SCROLL_DELAY", "scroll-delay", "wait after each scroll", &c.ScrollDelay},
		{"scrape", "settle", "SETTLE", "settle", "end the scroll wait once the result count is stable this long (0 disables)", &c.SettleWindow},
		{"scrape", "include_expired", "INCLUDE_EXPIRED", "include-expired", "restore expired cookies too", &c.IncludeExpired},

		{"output", "file", "OUTPUT", "out", "text output file", &c.OutputFile},
		{"output", "append", "APPEND", "append", "append to the output file", &c.AppendOutput},
		{"output", "store", "STORE", "store", "SQLite archive (empty disables)", &c.StorePath},

		{"browser", "bin", "BROWSER_BIN", "bin", "browser executable", &c.BrowserBin},
		{"browser", "headless", "HEADLESS", "headless", "run headless", &c.Headless},
		{"browser", "no_sandbox", "NO_SANDBOX", "no-sandbox", "disable the browser sandbox", &c.NoSandbox},
		{"browser", "user_data_dir", "USER_DATA_DIR", "user-data-dir", "browser profile directory", &c.UserDataDir},
		{"browser", "control_url", "CONTROL_URL", "control-url", "attach to a running browser", &c.ControlURL},
		{"browser", "leakless", "LEAKLESS", "leakless", "kill the browser if the process dies", &c.Leakless},
		{"browser", "stealth", "STEALTH", "stealth", "use a stealth page", &c.Stealth},

		{"log", "level", "LOG_LEVEL", "log-level", "debug, info, warn or error", &c.LogLevel},
		{"log", "format", "LOG_FORMAT", "log-format", "console or json", &c.LogFormat},
	}
}

// set parses raw into the setting's field.
func (s setting) set(raw string) error {
	raw = strings.TrimSpace(raw)
	var err error
	switch p := s.ptr.(type) {
	case *string:
		*p = raw
	case *bool:
		*p, err = strconv.ParseBool(raw)
	case *int:
		*p, err = strconv.Atoi(raw)
	case *time.Duration:
		*p, err = time.ParseDuration(raw)
	default:
		err = fmt.Errorf("unsupported type %T", s.ptr)
	}
	if err != nil {
		return fmt.Errorf("config: %s.%s: %w", s.section, s.key, err)
	}
	return nil
}
