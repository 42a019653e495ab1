package lexer

import (
	"errors"
	"testing"

	"github.com/coregx/rebyte/charset"
	"github.com/coregx/rebyte/config"
	"github.com/coregx/rebyte/rerr"
)

func tokens(t *testing.T, pattern string, cfg config.Config) ([]Token, error) {
	t.Helper()
	l := New([]byte(pattern), cfg)
	var out []Token
	for {
		tok, err := l.Token()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == Close && tok.EOF {
			return out, nil
		}
	}
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, got []Kind, want ...Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kind count mismatch: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("kind[%d]: got %v want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLiteralBytes(t *testing.T) {
	toks, err := tokens(t, "ab", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), Char, Char, Close)
	if !toks[0].Set.Equal(charset.Byte('a')) {
		t.Error("first char should be {a}")
	}
	if !toks[1].Set.Equal(charset.Byte('b')) {
		t.Error("second char should be {b}")
	}
	if !toks[2].EOF {
		t.Error("final Close should have EOF set")
	}
}

func TestStructuralTokens(t *testing.T) {
	toks, err := tokens(t, "(a|b)", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), Open, Char, TokUnion, Char, Close, Close)
}

func TestAutoGroupsWrapsParens(t *testing.T) {
	cfg := config.Build(config.WithAutoGroups(true))
	toks, err := tokens(t, "(a)", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), StartGroup, Open, Char, Close, EndGroup, Close)
}

func TestExplicitGroupMarkers(t *testing.T) {
	toks, err := tokens(t, `\Aa\Z`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), StartGroup, Char, EndGroup, Close)
}

func TestPostfixOperators(t *testing.T) {
	toks, err := tokens(t, "a*b+c?", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), Char, Repeat, Char, Repeat, Char, Repeat, Close)
	if toks[1].Min != 0 || toks[1].HasMax {
		t.Error("* should be Repeat{0, unbounded}")
	}
	if toks[3].Min != 1 || toks[3].HasMax {
		t.Error("+ should be Repeat{1, unbounded}")
	}
	if toks[5].Min != 0 || !toks[5].HasMax || toks[5].Max != 1 {
		t.Error("? should be Repeat{0,1}")
	}
}

func TestDotUsesConfiguredCharset(t *testing.T) {
	cfg := config.Build(config.WithDotCharset(charset.Byte('x')))
	toks, err := tokens(t, ".", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Byte('x')) {
		t.Error("'.' should expand to the configured DotCharset")
	}
}

func TestCharClassSimple(t *testing.T) {
	toks, err := tokens(t, "[abc]", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := charset.Byte('a').Union(charset.Byte('b')).Union(charset.Byte('c'))
	if !toks[0].Set.Equal(want) {
		t.Errorf("got %v want %v", toks[0].Set, want)
	}
}

func TestCharClassRange(t *testing.T) {
	toks, err := tokens(t, "[a-d]", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Range('a', 'd')) {
		t.Error("[a-d] should equal Range('a','d')")
	}
}

func TestCharClassInvert(t *testing.T) {
	toks, err := tokens(t, "[^a]", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Byte('a').Complement()) {
		t.Error("[^a] should be complement of {a}")
	}
}

func TestCharClassLeadingCloseBracketIsLiteral(t *testing.T) {
	toks, err := tokens(t, "[]a]", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := charset.Byte(']').Union(charset.Byte('a'))
	if !toks[0].Set.Equal(want) {
		t.Errorf("leading ']' should be literal: got %v want %v", toks[0].Set, want)
	}
}

func TestCharClassTrailingDashIsLiteral(t *testing.T) {
	toks, err := tokens(t, "[a-]", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := charset.Byte('a').Union(charset.Byte('-'))
	if !toks[0].Set.Equal(want) {
		t.Errorf("trailing '-' should be literal: got %v want %v", toks[0].Set, want)
	}
}

func TestCharClassEscapeInside(t *testing.T) {
	toks, err := tokens(t, `[\d]`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Range('0', '9')) {
		t.Error(`[\d] should equal the default \d class`)
	}
}

func TestCharClassAZLiteralizeInsideClass(t *testing.T) {
	toks, err := tokens(t, `[\A\Z]`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := charset.Byte('A').Union(charset.Byte('Z'))
	if !toks[0].Set.Equal(want) {
		t.Errorf(`[\A\Z] should literalize to {A,Z}, got %v`, toks[0].Set)
	}
}

func TestCharClassUnterminatedErrors(t *testing.T) {
	_, err := tokens(t, "[abc", config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindCharset)) {
		t.Fatalf("expected KindCharset, got %v", err)
	}
}

func TestHexEscape(t *testing.T) {
	toks, err := tokens(t, `\x41`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Byte('A')) {
		t.Error(`\x41 should be 'A'`)
	}
}

func TestHexEscapeSingleDigit(t *testing.T) {
	toks, err := tokens(t, `\x9`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Byte(0x9)) {
		t.Error(`\x9 should be byte 0x9`)
	}
}

func TestHexEscapeNoDigitsErrors(t *testing.T) {
	_, err := tokens(t, `\xg`, config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindEscape)) {
		t.Fatalf("expected KindEscape, got %v", err)
	}
}

func TestNamedEscapeClasses(t *testing.T) {
	toks, err := tokens(t, `\w`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := config.Default().EscCharset['w']
	if !toks[0].Set.Equal(want) {
		t.Error(`\w should match the configured word class`)
	}
}

func TestUnknownEscapeIsLiteral(t *testing.T) {
	toks, err := tokens(t, `\!`, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toks[0].Set.Equal(charset.Byte('!')) {
		t.Error(`\! should literalize to '!'`)
	}
}

func TestDanglingBackslashErrors(t *testing.T) {
	_, err := tokens(t, `a\`, config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindEscape)) {
		t.Fatalf("expected KindEscape, got %v", err)
	}
}

func TestRepeatExact(t *testing.T) {
	toks, err := tokens(t, "a{3}", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := toks[1]
	if r.Min != 3 || !r.HasMax || r.Max != 3 {
		t.Errorf("a{3} should be Repeat{3,3}, got %+v", r)
	}
}

func TestRepeatRange(t *testing.T) {
	toks, err := tokens(t, "a{2,5}", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := toks[1]
	if r.Min != 2 || !r.HasMax || r.Max != 5 {
		t.Errorf("a{2,5} should be Repeat{2,5}, got %+v", r)
	}
}

func TestRepeatLowerBoundOnly(t *testing.T) {
	toks, err := tokens(t, "a{2,}", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := toks[1]
	if r.Min != 2 || r.HasMax {
		t.Errorf("a{2,} should be Repeat{2,unbounded}, got %+v", r)
	}
}

func TestRepeatUpperBoundOnly(t *testing.T) {
	toks, err := tokens(t, "a{,5}", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := toks[1]
	if r.Min != 0 || !r.HasMax || r.Max != 5 {
		t.Errorf("a{,5} should be Repeat{0,5}, got %+v", r)
	}
}

func TestRepeatEmptyBracesErrors(t *testing.T) {
	_, err := tokens(t, "a{}", config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindRepeat)) {
		t.Fatalf("expected KindRepeat, got %v", err)
	}
}

// TestRepeatBothBoundsOmittedMeansUnbounded covers "a{,}", which reads like
// the empty-braces case but is accepted as a spelling of "a*": both bounds
// omitted means [0, unbounded), not an error.
func TestRepeatBothBoundsOmittedMeansUnbounded(t *testing.T) {
	toks, err := tokens(t, "a{,}", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := toks[1]
	if r.Min != 0 || r.HasMax {
		t.Errorf("a{,} should be Repeat{0,unbounded}, got %+v", r)
	}
}

func TestRepeatZeroExactErrors(t *testing.T) {
	_, err := tokens(t, "a{0}", config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindRepeat)) {
		t.Fatalf("expected KindRepeat for {0}, got %v", err)
	}
}

func TestRepeatMinGreaterThanMaxErrors(t *testing.T) {
	_, err := tokens(t, "a{5,2}", config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindRepeat)) {
		t.Fatalf("expected KindRepeat, got %v", err)
	}
}

func TestRepeatUnterminatedErrors(t *testing.T) {
	_, err := tokens(t, "a{3", config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindRepeat)) {
		t.Fatalf("expected KindRepeat, got %v", err)
	}
}

func TestRepeatOverflowErrors(t *testing.T) {
	_, err := tokens(t, "a{9999}", config.Default())
	if !errors.Is(err, rerr.NewError(rerr.KindOverflow)) {
		t.Fatalf("expected KindOverflow, got %v", err)
	}
}

func TestEmptyPatternIsImmediateEOF(t *testing.T) {
	toks, err := tokens(t, "", config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), Close)
	if !toks[0].EOF {
		t.Error("expected EOF on empty pattern")
	}
}

func TestTokenAfterEOFIsStableIdempotent(t *testing.T) {
	l := New([]byte("a"), config.Default())
	for i := 0; i < 3; i++ {
		if _, err := l.Token(); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
	}
	tok, err := l.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != Close || !tok.EOF {
		t.Error("repeated calls past EOF should keep returning Close(true)")
	}
}

// TestTotalityReachesCloseOrOneError is spec.md §8 property 2: lexing a
// pattern always terminates, either in a Close(true) or exactly one error,
// never looping forever and never producing a token after an error.
func TestTotalityReachesCloseOrOneError(t *testing.T) {
	patterns := []string{
		"", "a", "(a|b)*c+d?[e-g]{1,3}", `\A(a)\Z`, "[abc", `a\`, "a{",
		"a{,}", `\x`, "[^]a]", `a{1,2,3}`,
	}
	for _, p := range patterns {
		l := New([]byte(p), config.Default())
		reachedEnd := false
		for i := 0; i < len(p)+10; i++ {
			tok, err := l.Token()
			if err != nil {
				reachedEnd = true
				break
			}
			if tok.Kind == Close && tok.EOF {
				reachedEnd = true
				break
			}
		}
		if !reachedEnd {
			t.Errorf("pattern %q did not terminate within bound", p)
		}
	}
}
