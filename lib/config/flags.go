package config

import (
	"flag"
	"time"
)

// DotEnvFile is the dotenv file consulted by Parse.
const DotEnvFile = ".env"

// Register adds a flag for every setting, using the current values as
// defaults.
func (c *Config) Register(fs *flag.FlagSet) {
	for _, s := range c.settings() {
		switch p := s.ptr.(type) {
		case *string:
			fs.StringVar(p, s.flag, *p, s.usage)
		case *bool:
			fs.BoolVar(p, s.flag, *p, s.usage)
		case *int:
			fs.IntVar(p, s.flag, *p, s.usage)
		case *time.Duration:
			fs.DurationVar(p, s.flag, *p, s.usage)
		}
	}
}

// Parse resolves the full configuration for a command. Flags win over the
// environment, the environment over the ini file selected by -config, and the
// file over the defaults. extra, when not nil, registers command specific
// flags on the same set.
func Parse(name string, args []string, extra func(*flag.FlagSet)) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", DefaultFile, "ini file")
	Default().Register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	c := Default()
	if err := c.LoadFile(*path, explicit); err != nil {
		return nil, err
	}
	if err := c.LoadEnv(DotEnvFile); err != nil {
		return nil, err
	}

	// replay only the flags the user typed onto the layered result
	final := flag.NewFlagSet(name, flag.ContinueOnError)
	c.Register(final)
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil || final.Lookup(f.Name) == nil {
			return
		}
		err = final.Set(f.Name, f.Value.String())
	})
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
