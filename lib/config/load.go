package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
)

// ErrConfigNotFound is returned when an explicitly requested ini file is missing.
var ErrConfigNotFound = errors.New("config: file not found")

// LoadFile applies the keys present in the ini file at path. A missing file is
// an error only when required is set.
func (c *Config) LoadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if required {
				return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil
		}
		return err
	}

	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	for _, s := range c.settings() {
		sec := f.Section(s.section)
		if !sec.HasKey(s.key) {
			continue
		}
		if err := s.set(sec.Key(s.key).String()); err != nil {
			return err
		}
	}
	return nil
}

// LoadEnv applies TWEETGRAB_* variables. Values from the dotenv file fill in
// variables the process environment does not set. A missing dotenv file is
// ignored.
func (c *Config) LoadEnv(dotenv string) error {
	vars := map[string]string{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			vars = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return fmt.Errorf("config: %s: %w", dotenv, err)
		}
	}

	for _, s := range c.settings() {
		name := EnvPrefix + s.env
		v, ok := os.LookupEnv(name)
		if !ok {
			v, ok = vars[name]
		}
		if !ok {
			continue
		}
		if err := s.set(v); err != nil {
			return fmt.Errorf("%w (from %s)", err, name)
		}
	}
	return nil
}
