package wrapgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChain_LinearWrap(t *testing.T) {
	g := New()
	g.AddWrap("gco", "git")
	g.AddWrap("git", "hub")

	if diff := cmp.Diff([]string{"gco", "git", "hub"}, g.Chain("gco")); diff != "" {
		t.Errorf("Chain(gco) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hub"}, g.Chain("hub")); diff != "" {
		t.Errorf("Chain(hub) mismatch (-want +got):\n%s", diff)
	}
}

func TestChain_BreaksCycles(t *testing.T) {
	g := New()
	g.AddWrap("a", "b")
	g.AddWrap("b", "a") // cycle back to root

	chain := g.Chain("a")
	if diff := cmp.Diff([]string{"a", "b"}, chain); diff != "" {
		t.Errorf("Chain(a) mismatch (-want +got):\n%s", diff)
	}
}

func TestChain_UnknownRootIsJustItself(t *testing.T) {
	g := New()
	if diff := cmp.Diff([]string{"solo"}, g.Chain("solo")); diff != "" {
		t.Errorf("Chain(solo) mismatch (-want +got):\n%s", diff)
	}
}

func TestAddWrap_Idempotent(t *testing.T) {
	g := New()
	g.AddWrap("a", "b")
	g.AddWrap("a", "b")

	if got := g.Pairs(); len(got) != 1 {
		t.Errorf("got %d pairs after duplicate AddWrap, want 1: %v", len(got), got)
	}
}

func TestAddWrap_RejectsEmpty(t *testing.T) {
	g := New()
	g.AddWrap("", "b")
	g.AddWrap("a", "")

	if got := g.Pairs(); len(got) != 0 {
		t.Errorf("got %d pairs, want 0: %v", len(got), got)
	}
}

func TestRemoveWrap(t *testing.T) {
	g := New()
	g.AddWrap("a", "b")
	g.AddWrap("a", "c")
	g.RemoveWrap("a", "b")

	if diff := cmp.Diff([]string{"a", "c"}, g.Chain("a")); diff != "" {
		t.Errorf("Chain(a) mismatch (-want +got):\n%s", diff)
	}
}

func TestPairs_Stable(t *testing.T) {
	g := New()
	g.AddWrap("z", "y")
	g.AddWrap("a", "b")

	want := []Pair{{Command: "a", Target: "b"}, {Command: "z", Target: "y"}}
	if diff := cmp.Diff(want, g.Pairs()); diff != "" {
		t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
	}
}
