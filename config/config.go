// Package config defines the compile-time configuration accepted by the
// lexer (spec.md §6): the charset '.' expands to, the named escape classes
// available as '\c', and whether every '(...)' implicitly captures.
package config

import (
	"github.com/coregx/rebyte/charset"
	"github.com/coregx/rebyte/rerr"
)

// Config controls lexer behavior. The zero value is not valid configuration
// on its own — use Default() and override fields, or build one with
// functional Options via Build.
type Config struct {
	// DotCharset is the set '.' expands to.
	DotCharset charset.Set

	// EscCharset maps an escape letter c to the charset '\c' expands to.
	// Keys must be ASCII letters excluding 'A', 'Z', 'x', 'X', which are
	// reserved (\A, \Z, \x, \X).
	EscCharset map[byte]charset.Set

	// AutoGroups, when true, makes the lexer inject a StartGroup token
	// immediately before every '(' and an EndGroup token immediately after
	// every ')', so every parenthesized sub-expression captures.
	AutoGroups bool
}

// reserved escape letters, never assignable via EscCharset.
var reserved = map[byte]bool{'A': true, 'Z': true, 'x': true, 'X': true}

// Default returns the configuration described in spec.md §6: '.' matches
// any byte, and the standard \t \n \s \S \d \D \w \W classes are bound.
func Default() Config {
	space := charset.Byte(' ').Union(charset.Byte('\t')).Union(charset.Byte('\r')).Union(charset.Byte('\n'))
	digit := charset.Range('0', '9')
	word := charset.Range('a', 'z').Union(charset.Range('A', 'Z')).Union(digit).Union(charset.Byte('_'))

	return Config{
		DotCharset: charset.All(),
		EscCharset: map[byte]charset.Set{
			't': charset.Byte('\t'),
			'n': charset.Byte('\n'),
			's': space,
			'S': space.Complement(),
			'd': digit,
			'D': digit.Complement(),
			'w': word,
			'W': word.Complement(),
		},
		AutoGroups: false,
	}
}

// Option configures a Config built by Build.
type Option func(*Config)

// WithDotCharset overrides the set '.' expands to.
func WithDotCharset(s charset.Set) Option {
	return func(c *Config) { c.DotCharset = s }
}

// WithEscape binds the escape letter e to charset s, in addition to (or
// overriding) the defaults.
func WithEscape(e byte, s charset.Set) Option {
	return func(c *Config) {
		if c.EscCharset == nil {
			c.EscCharset = make(map[byte]charset.Set)
		}
		c.EscCharset[e] = s
	}
}

// WithAutoGroups sets whether every '(...)' implicitly captures.
func WithAutoGroups(auto bool) Option {
	return func(c *Config) { c.AutoGroups = auto }
}

// Build returns the default Config with opts applied in order.
func Build(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate reports whether c is well-formed: EscCharset keys must be ASCII
// letters and may not be one of the reserved letters A, Z, x, X. The
// returned error is a *rerr.Error with Kind KindConfig, wrapping a
// *ConfigError that carries the offending key for callers that want it.
func (c Config) Validate() error {
	for e := range c.EscCharset {
		isLower := e >= 'a' && e <= 'z'
		isUpper := e >= 'A' && e <= 'Z'
		if !isLower && !isUpper {
			return rerr.WrapError(rerr.KindConfig, &ConfigError{Key: e, Message: "escape key must be an ASCII letter"})
		}
		if reserved[e] {
			return rerr.WrapError(rerr.KindConfig, &ConfigError{Key: e, Message: "escape key is reserved"})
		}
	}
	return nil
}

// ConfigError is the underlying cause of a KindConfig rerr.Error, carrying
// the offending EscCharset key. Retrieve it with errors.As.
type ConfigError struct {
	Key     byte
	Message string
}

func (e *ConfigError) Error() string {
	return string(rune(e.Key)) + ": " + e.Message
}
