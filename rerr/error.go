// Package rerr defines the single sum-type error raised anywhere in the
// compilation pipeline (spec.md §4.6, §7). It is a separate package from
// the root rebyte package so that every stage (lexer, nfa, dfa, config)
// can construct an Error without importing the top-level package that, in
// turn, imports them; rebyte re-exports Error and Kind as aliases so
// callers never see the rerr import path.
package rerr

import "fmt"

// Kind identifies which of the ten compile-time failure modes an Error
// represents. Kind is a closed sum type: every stage of the pipeline raises
// one of these and nothing else (spec.md §4.6).
type Kind uint8

const (
	// KindConfig indicates an invalid Config was supplied before lexing began.
	KindConfig Kind = iota
	// KindCharset indicates malformed '[...]' character-class syntax.
	KindCharset
	// KindEscape indicates a dangling '\' or an invalid '\x' hex escape.
	KindEscape
	// KindRepeat indicates malformed '{...}' quantifier syntax.
	KindRepeat
	// KindOverflow indicates a repeat bound or hex byte value exceeded 255.
	KindOverflow
	// KindBalance indicates mismatched '(' / ')' nesting.
	KindBalance
	// KindGroup indicates an attempt to capture an empty sub-expression.
	KindGroup
	// KindUnion indicates misuse of '|', including unbalanced parentheses
	// discovered while resolving an alternation.
	KindUnion
	// KindEmpty indicates an empty expression or sub-expression where an
	// operand was required.
	KindEmpty
	// KindPostfix indicates misuse of a postfix operator (*, +, ?, {m,n}),
	// including stacking one postfix operator directly on another.
	KindPostfix
)

// message holds the fixed, implementer-specified string for each Kind
// (spec.md §6). These strings are part of the public contract: callers may
// match on them, so they are never formatted with per-call detail.
var message = [...]string{
	KindConfig:   "invalid regex configuration",
	KindCharset:  "bad charset syntax",
	KindEscape:   "invalid escape sequence",
	KindRepeat:   "bad repeat syntax",
	KindOverflow: "repeat number or hexadecimal char value exceeds 255",
	KindBalance:  "bad () balance",
	KindGroup:    "attempted to define empty expr as a group",
	KindUnion:    "invalid usage of '|' or bad () balance",
	KindEmpty:    "empty expression or sub-expression",
	KindPostfix:  "invalid usage of postfix operator",
}

// String returns the fixed human-readable string for k.
func (k Kind) String() string {
	if int(k) < len(message) {
		return message[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Error is the single sum-type error raised anywhere in the compilation
// pipeline. It carries no location metadata and is never chained across
// stages (spec.md §7) — the stage that first detects a problem is the only
// one that gets to report it.
type Error struct {
	Kind Kind
	err  error // optional underlying cause, for Unwrap only
}

// NewError constructs an Error of the given Kind with no underlying cause.
func NewError(kind Kind) *Error {
	return &Error{Kind: kind}
}

// WrapError constructs an Error of the given Kind wrapping a lower-level
// cause (e.g. the *config.ConfigError raised by Config.Validate). The cause is
// available via Unwrap but the Kind's fixed message is what Error() reports.
func WrapError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, err: cause}
}

// Error implements the error interface, returning the Kind's fixed string.
func (e *Error) Error() string {
	return e.Kind.String()
}

// Unwrap returns the underlying cause, if any, for use with errors.Is/As.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write `errors.Is(err, rebyte.NewError(rebyte.KindOverflow))`.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}
