package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FINDBAR_"

type envSetter func(cfg *Config, value string) error

// envMapping maps environment variables (without prefix) to settings.
var envMapping = map[string]envSetter{
	"SEARCH_CASE_SENSITIVE": boolSetter(func(c *Config) *bool { return &c.Search.CaseSensitive }),
	"SEARCH_WHOLE_WORD":     boolSetter(func(c *Config) *bool { return &c.Search.WholeWord }),
	"SEARCH_REGEX":          boolSetter(func(c *Config) *bool { return &c.Search.Regex }),
	"VIEW_SCROLL_MARGIN": func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.View.ScrollMargin = f
		return nil
	},
	"VIEW_TAB_WIDTH": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.View.TabWidth = n
		return nil
	},
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = strings.ToLower(v)
		return nil
	},
	"LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
}

// EnvVars returns the names of every recognized environment variable.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, EnvPrefix+name)
	}
	return names
}

// ApplyEnv overrides cfg with the FINDBAR_ variables found by lookup.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	for name, set := range envMapping {
		val, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, val); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
	}
	return nil
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// parseBool accepts the usual strconv forms plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off", "":
		return false, nil
	}
	return strconv.ParseBool(s)
}
