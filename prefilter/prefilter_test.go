package prefilter

import "testing"

func TestBuildEmptyIsTrivial(t *testing.T) {
	pf := Build(nil)
	if !pf.IsTrivial() {
		t.Fatal("empty prefix should yield a trivial prefilter")
	}
	if pos := pf.Find([]byte("anything"), 3); pos != 3 {
		t.Errorf("trivial Find(_, 3) = %d, want 3", pos)
	}
}

func TestBuildSingleByte(t *testing.T) {
	pf := Build([]byte("x"))
	if pf.IsTrivial() {
		t.Fatal("single-byte prefilter should not be trivial")
	}
	pos := pf.Find([]byte("abcxdef"), 0)
	if pos != 3 {
		t.Errorf("Find = %d, want 3", pos)
	}
	if pos := pf.Find([]byte("abc"), 0); pos != -1 {
		t.Errorf("Find on absent byte = %d, want -1", pos)
	}
}

func TestBuildMultiByteLiteral(t *testing.T) {
	pf := Build([]byte("hello"))
	if pf.IsTrivial() {
		t.Fatal("multi-byte prefilter should not be trivial")
	}
	pos := pf.Find([]byte("say hello world"), 0)
	if pos != 4 {
		t.Errorf("Find = %d, want 4", pos)
	}
}

func TestFindRespectsStartOffset(t *testing.T) {
	pf := Build([]byte("ab"))
	haystack := []byte("ab..ab")
	if pos := pf.Find(haystack, 1); pos != 4 {
		t.Errorf("Find(_, 1) = %d, want 4", pos)
	}
}
