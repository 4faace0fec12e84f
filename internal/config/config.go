// Package config loads reprint.toml: printer settings plus the rename and
// replace recipes applied before printing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"reprint/internal/printer"
	"reprint/internal/transform"
)

// FileName is the manifest looked up by Find.
const FileName = "reprint.toml"

var (
	// ErrNoConfig is returned by Load when no reprint.toml exists up the tree.
	ErrNoConfig = errors.New("config: no " + FileName + " found")
	// ErrBadValue wraps every validation failure.
	ErrBadValue = errors.New("config: bad value")
)

type Print struct {
	TabWidth        int    `toml:"tab_width"`
	UseTabs         bool   `toml:"use_tabs"`
	Quote           string `toml:"quote"`
	LineTerminator  string `toml:"line_terminator"` // "", lf, crlf, cr
	ReuseWhitespace bool   `toml:"reuse_whitespace"`
	TrailingComma   bool   `toml:"trailing_comma"`
}

// Rename is a [[rename]] entry.
type Rename struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Replace is a [[replace]] entry; Kind is string, number or ident.
type Replace struct {
	Kind string `toml:"kind"`
	From string `toml:"from"`
	To   string `toml:"to"`
}

type Config struct {
	Print   Print     `toml:"print"`
	Rename  []Rename  `toml:"rename"`
	Replace []Replace `toml:"replace"`

	// Path of the file the config came from, empty for defaults.
	Path string `toml:"-"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	return &Config{Print: Print{Quote: printer.QuoteAuto, ReuseWhitespace: true}}
}

// Find walks up from startDir looking for reprint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and reads the config for startDir. Without a file it returns
// the defaults together with ErrNoConfig, so callers may ignore that error.
func Load(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), ErrNoConfig
	}
	return LoadFile(path)
}

// LoadFile reads one config file. Keys it does not know are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrBadValue, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var terminators = map[string]string{"": "", "lf": "\n", "crlf": "\r\n", "cr": "\r"}

// Validate checks enumerations and recipe entries.
func (c *Config) Validate() error {
	p := c.Print
	if p.TabWidth < 0 {
		return fmt.Errorf("%w: print.tab_width %d is negative", ErrBadValue, p.TabWidth)
	}
	if !slices.Contains([]string{printer.QuoteAuto, printer.QuoteSingle, printer.QuoteDouble}, p.Quote) {
		return fmt.Errorf("%w: print.quote %q (expected: auto|single|double)", ErrBadValue, p.Quote)
	}
	if _, ok := terminators[strings.ToLower(p.LineTerminator)]; !ok {
		return fmt.Errorf("%w: print.line_terminator %q (expected: lf|crlf|cr)", ErrBadValue, p.LineTerminator)
	}
	for i, r := range c.Rename {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("%w: rename[%d] needs from and to", ErrBadValue, i)
		}
	}
	_, err := c.Recipe()
	return err
}

// PrinterOptions maps the [print] section onto printer options.
func (c *Config) PrinterOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.TabWidth = c.Print.TabWidth
	opts.UseTabs = c.Print.UseTabs
	opts.Quote = c.Print.Quote
	opts.LineTerminator = terminators[strings.ToLower(c.Print.LineTerminator)]
	opts.ReuseWhitespace = c.Print.ReuseWhitespace
	opts.TrailingComma = c.Print.TrailingComma
	return opts
}

// Recipe builds the mutation rules: renames first, then replacements, each
// in file order.
func (c *Config) Recipe() (transform.Recipe, error) {
	var rec transform.Recipe
	for _, r := range c.Rename {
		rec.Rules = append(rec.Rules, transform.Rename{From: r.From, To: r.To})
	}
	for i, r := range c.Replace {
		rule, err := transform.NewReplaceLiteral(r.Kind, r.From, r.To)
		if err != nil {
			return transform.Recipe{}, fmt.Errorf("%w: replace[%d]: %w", ErrBadValue, i, err)
		}
		rec.Rules = append(rec.Rules, rule)
	}
	return rec, nil
}

// Encode writes c as TOML.
func Encode(w io.Writer, c *Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
