package literal

import (
	"testing"

	"github.com/coregx/rebyte/config"
	"github.com/coregx/rebyte/dfa"
	"github.com/coregx/rebyte/lexer"
	"github.com/coregx/rebyte/nfa"
)

func compile(t *testing.T, pattern string) *dfa.DFA {
	t.Helper()
	l := lexer.New([]byte(pattern), config.Default())
	uncooked, err := nfa.Compile(l)
	if err != nil {
		t.Fatalf("compile(%q): %v", pattern, err)
	}
	return dfa.Build(nfa.Cook(uncooked))
}

func TestRequiredPrefixPlainLiteral(t *testing.T) {
	d := compile(t, "abc")
	got := string(RequiredPrefix(d))
	if got != "abc" {
		t.Errorf("RequiredPrefix = %q, want %q", got, "abc")
	}
}

func TestRequiredPrefixStopsAtBranch(t *testing.T) {
	d := compile(t, "ab(c|d)")
	got := string(RequiredPrefix(d))
	if got != "ab" {
		t.Errorf("RequiredPrefix = %q, want %q", got, "ab")
	}
}

func TestRequiredPrefixStopsAtOptional(t *testing.T) {
	d := compile(t, "ab?c")
	got := string(RequiredPrefix(d))
	if got != "a" {
		t.Errorf("RequiredPrefix = %q, want %q", got, "a")
	}
}

func TestRequiredPrefixEmptyForAlternationAtStart(t *testing.T) {
	d := compile(t, "a|b")
	got := RequiredPrefix(d)
	if len(got) != 0 {
		t.Errorf("RequiredPrefix = %q, want empty", got)
	}
}

func TestRequiredPrefixStopsAtAcceptingState(t *testing.T) {
	d := compile(t, "a")
	got := string(RequiredPrefix(d))
	if got != "a" {
		t.Errorf("RequiredPrefix = %q, want %q", got, "a")
	}
}
