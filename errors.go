package rebyte

import "github.com/coregx/rebyte/rerr"

// Kind identifies which of the ten compile-time failure modes an Error
// represents (spec.md §4.6). It is an alias of rerr.Kind so that every
// pipeline stage can construct errors without creating an import cycle
// through this package.
type Kind = rerr.Kind

// Error is the single sum-type error raised anywhere in the compilation
// pipeline. See rerr.Error for the full contract.
type Error = rerr.Error

// The ten error kinds (spec.md §4.6, §6).
const (
	KindConfig   = rerr.KindConfig
	KindCharset  = rerr.KindCharset
	KindEscape   = rerr.KindEscape
	KindRepeat   = rerr.KindRepeat
	KindOverflow = rerr.KindOverflow
	KindBalance  = rerr.KindBalance
	KindGroup    = rerr.KindGroup
	KindUnion    = rerr.KindUnion
	KindEmpty    = rerr.KindEmpty
	KindPostfix  = rerr.KindPostfix
)

// NewError constructs an Error of the given Kind with no underlying cause.
func NewError(kind Kind) *Error { return rerr.NewError(kind) }
