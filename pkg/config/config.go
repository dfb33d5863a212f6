// Package config reads and writes the repository configuration file and
// the tool's own settings file.
//
// Repository keys are addressed the way git-config addresses them:
// "section.key" or "section.subsection.key".
package config

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// FormatVersionKey is the key consulted by the repository format check.
const FormatVersionKey = "core.repositoryformatversion"

var ErrInvalidKey = errors.New("config: invalid key")

// Config is an ordered set of git-config options.
type Config struct {
	raw *format.Config
}

// New returns an empty Config.
func New() *Config {
	return &Config{raw: format.New()}
}

// Default returns the configuration written by a fresh repository init.
func Default() *Config {
	c := New()
	for _, kv := range [][2]string{
		{FormatVersionKey, "0"},
		{"core.filemode", "false"},
		{"core.bare", "false"},
		{"core.logallrefupdates", "true"},
		{"core.ignorecase", "true"},
		{"core.precomposeunicode", "true"},
	} {
		_ = c.Set(kv[0], kv[1])
	}
	return c
}

// Load decodes git-config text.
func Load(r io.Reader) (*Config, error) {
	c := New()
	if err := format.NewDecoder(r).Decode(c.raw); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return c, nil
}

// Encode writes the configuration as git-config text.
func (c *Config) Encode(w io.Writer) error {
	if err := format.NewEncoder(w).Encode(c.raw); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

type key struct {
	section    string
	subsection string
	name       string
}

func parseKey(k string) (key, error) {
	first := strings.IndexByte(k, '.')
	last := strings.LastIndexByte(k, '.')
	if first <= 0 || last == len(k)-1 {
		return key{}, fmt.Errorf("%w %q", ErrInvalidKey, k)
	}
	out := key{section: k[:first], name: k[last+1:]}
	if last > first {
		out.subsection = k[first+1 : last]
	}
	return out, nil
}

// Get returns the value of key, or def if it is not set.
func (c *Config) Get(k, def string) string {
	opts, ok := c.lookup(k)
	if !ok {
		return def
	}
	name := mustName(k)
	if !opts.Has(name) {
		return def
	}
	return opts.Get(name)
}

// GetInt returns the integer value of key, or def if it is not set.
func (c *Config) GetInt(k string, def int) (int, error) {
	v := c.Get(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

// GetBool returns the boolean value of key, or def if it is not set.
func (c *Config) GetBool(k string, def bool) (bool, error) {
	v := c.Get(k, "")
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("config: %s: invalid boolean %q", k, v)
}

// Set stores value under key, replacing any existing values and creating
// the section as needed.
func (c *Config) Set(k, value string) error {
	pk, err := parseKey(k)
	if err != nil {
		return err
	}
	sec := c.raw.Section(pk.section)
	if pk.subsection == "" {
		sec.SetOption(pk.name, value)
		return nil
	}
	sec.Subsection(pk.subsection).SetOption(pk.name, value)
	return nil
}

// All yields every key and value in file order.
func (c *Config) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, sec := range c.raw.Sections {
			for _, opt := range sec.Options {
				if !yield(sec.Name+"."+opt.Key, opt.Value) {
					return
				}
			}
			for _, sub := range sec.Subsections {
				for _, opt := range sub.Options {
					if !yield(sec.Name+"."+sub.Name+"."+opt.Key, opt.Value) {
						return
					}
				}
			}
		}
	}
}

// lookup finds the option list holding k without creating sections.
func (c *Config) lookup(k string) (format.Options, bool) {
	pk, err := parseKey(k)
	if err != nil {
		return nil, false
	}
	if !c.raw.HasSection(pk.section) {
		return nil, false
	}
	sec := c.raw.Section(pk.section)
	if pk.subsection == "" {
		return sec.Options, true
	}
	if !sec.HasSubsection(pk.subsection) {
		return nil, false
	}
	return sec.Subsection(pk.subsection).Options, true
}

func mustName(k string) string {
	return k[strings.LastIndexByte(k, '.')+1:]
}
