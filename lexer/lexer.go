// Package lexer turns the surface regex syntax into a stream of Tokens
// (spec.md §4.2). The Lexer holds one byte of pushback (implicit in its
// cursor) and one token of pushback, which is exactly enough to synthesize
// the StartGroup/EndGroup pair that auto-groups mode wraps around every
// '(...)' without look-ahead anywhere else in the pipeline.
package lexer

import (
	"github.com/coregx/rebyte/charset"
	"github.com/coregx/rebyte/config"
	"github.com/coregx/rebyte/rerr"
)

// Lexer tokenizes a byte-string pattern under a given Config.
type Lexer struct {
	input   []byte
	pos     int
	cfg     config.Config
	pending *Token
}

// New creates a Lexer over pattern using cfg.
func New(pattern []byte, cfg config.Config) *Lexer {
	return &Lexer{input: pattern, cfg: cfg}
}

// Token returns the next token in the stream. Once Token has returned a
// Close token with EOF set, every subsequent call returns the same thing
// (spec.md §8 property 2: lexing is total — it always terminates in a
// Close(true) or an error, never an infinite loop).
func (l *Lexer) Token() (Token, error) {
	if l.pending != nil {
		t := *l.pending
		l.pending = nil
		return t, nil
	}
	if l.pos >= len(l.input) {
		return closeToken(true), nil
	}

	c := l.input[l.pos]
	switch c {
	case '(':
		l.pos++
		if l.cfg.AutoGroups {
			open := Token{Kind: Open}
			l.pending = &open
			return Token{Kind: StartGroup}, nil
		}
		return Token{Kind: Open}, nil

	case ')':
		l.pos++
		closeTok := closeToken(false)
		if l.cfg.AutoGroups {
			end := Token{Kind: EndGroup}
			l.pending = &end
			return closeTok, nil
		}
		return closeTok, nil

	case '|':
		l.pos++
		return Token{Kind: TokUnion}, nil

	case '.':
		l.pos++
		return charToken(l.cfg.DotCharset), nil

	case '*':
		l.pos++
		return repeatUnbounded(0), nil

	case '+':
		l.pos++
		return repeatUnbounded(1), nil

	case '?':
		l.pos++
		return repeatBounded(0, 1), nil

	case '[':
		return l.lexClass()

	case '{':
		return l.lexRepeat()

	case '\\':
		return l.lexEscape(false)

	default:
		l.pos++
		return charToken(charset.Byte(c)), nil
	}
}

// lexEscape consumes a backslash and the byte(s) that follow it. inClass
// disables the StartGroup/EndGroup reservation of \A/\Z, since a bracket
// expression has no room in its output for a structural token — inside a
// class \A and \Z literalize to 'A' and 'Z' like any other unrecognized
// escape.
func (l *Lexer) lexEscape(inClass bool) (Token, error) {
	l.pos++ // consume '\'
	if l.pos >= len(l.input) {
		return Token{}, rerr.NewError(rerr.KindEscape)
	}
	c := l.input[l.pos]

	if !inClass {
		switch c {
		case 'A':
			l.pos++
			return Token{Kind: StartGroup}, nil
		case 'Z':
			l.pos++
			return Token{Kind: EndGroup}, nil
		}
	}

	switch c {
	case 'x', 'X':
		l.pos++
		b, err := l.lexHexByte()
		if err != nil {
			return Token{}, err
		}
		return charToken(charset.Byte(b)), nil
	default:
		if s, ok := l.cfg.EscCharset[c]; ok {
			l.pos++
			return charToken(s), nil
		}
		l.pos++
		return charToken(charset.Byte(c)), nil
	}
}

// lexHexByte reads 1-2 hex digits and returns their value. The caller has
// already consumed '\x' or '\X'.
func (l *Lexer) lexHexByte() (byte, error) {
	start := l.pos
	value := 0
	digits := 0
	for digits < 2 && l.pos < len(l.input) && isHexDigit(l.input[l.pos]) {
		value = value*16 + hexValue(l.input[l.pos])
		l.pos++
		digits++
	}
	if digits == 0 {
		l.pos = start
		return 0, rerr.NewError(rerr.KindEscape)
	}
	return byte(value), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// lexClass parses a bracket expression '[...]' starting at '['.
func (l *Lexer) lexClass() (Token, error) {
	l.pos++ // consume '['
	invert := false
	if l.pos < len(l.input) && l.input[l.pos] == '^' {
		invert = true
		l.pos++
	}

	var set charset.Set
	first := true
	var lastByte byte
	haveLast := false

	for {
		if l.pos >= len(l.input) {
			return Token{}, rerr.NewError(rerr.KindCharset)
		}
		c := l.input[l.pos]

		if c == ']' && !first {
			l.pos++
			break
		}
		first = false

		if c == '-' && haveLast && l.pos+1 < len(l.input) && l.input[l.pos+1] != ']' {
			l.pos++ // consume '-'
			hi := l.input[l.pos]
			l.pos++
			set = set.Union(charset.Range(lastByte, hi))
			lastByte = hi
			haveLast = true
			continue
		}

		if c == '\\' {
			tok, err := l.lexEscape(true)
			if err != nil {
				return Token{}, err
			}
			set = set.Union(tok.Set)
			lastByte = maxByte(tok.Set)
			haveLast = true
			continue
		}

		l.pos++
		set.Insert(c)
		lastByte = c
		haveLast = true
	}

	if invert {
		set = set.Complement()
	}
	return charToken(set), nil
}

// maxByte returns the highest byte in s. s must be non-empty.
func maxByte(s charset.Set) byte {
	var m byte
	s.Backward(func(b byte) bool {
		m = b
		return false
	})
	return m
}

// lexRepeat parses a bounded quantifier '{m}', '{m,n}', '{m,}' or '{,n}'
// starting at '{'.
func (l *Lexer) lexRepeat() (Token, error) {
	l.pos++ // consume '{'

	min, haveMin, err := l.lexDecimal()
	if err != nil {
		return Token{}, err
	}

	if l.pos < len(l.input) && l.input[l.pos] == ',' {
		l.pos++
		max, haveMax, err := l.lexDecimal()
		if err != nil {
			return Token{}, err
		}
		if l.pos >= len(l.input) || l.input[l.pos] != '}' {
			return Token{}, rerr.NewError(rerr.KindRepeat)
		}
		l.pos++ // consume '}'

		if !haveMin && !haveMax {
			return repeatUnbounded(0), nil // "{,}", same as "*"
		}
		if !haveMax {
			return repeatUnbounded(uint32(min)), nil // "{m,}"
		}
		if !haveMin {
			min = 0 // "{,n}"
		}
		if min > max || max == 0 {
			return Token{}, rerr.NewError(rerr.KindRepeat)
		}
		return repeatBounded(uint32(min), uint32(max)), nil
	}

	if !haveMin {
		return Token{}, rerr.NewError(rerr.KindRepeat) // "{}"
	}
	if l.pos >= len(l.input) || l.input[l.pos] != '}' {
		return Token{}, rerr.NewError(rerr.KindRepeat)
	}
	l.pos++ // consume '}'
	if min == 0 {
		return Token{}, rerr.NewError(rerr.KindRepeat) // "{m}" requires m>0
	}
	return repeatBounded(uint32(min), uint32(min)), nil
}

// lexDecimal reads as many decimal digits as are present at the cursor,
// returning the accumulated value and whether any digit was read.
// Accumulating past 255 raises KindOverflow (spec.md §4.2).
func (l *Lexer) lexDecimal() (value int, present bool, err error) {
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		value = value*10 + int(l.input[l.pos]-'0')
		if value > 255 {
			return 0, false, rerr.NewError(rerr.KindOverflow)
		}
		present = true
		l.pos++
	}
	return value, present, nil
}
