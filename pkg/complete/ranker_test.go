package complete

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cand(text string, tier MatchTier) Candidate {
	return Candidate{Text: text, Match: MatchDescriptor{Tier: tier}}
}

func TestRank_FiltersBelowThreshold(t *testing.T) {
	in := []Candidate{
		cand("file1", TierPrefix),
		cand("file2", TierSubstring),
		cand("file3", TierSubsequenceInsert),
	}
	got := Rank(in)
	if len(got) != 1 || got[0].Text != "file1" {
		t.Errorf("Rank() = %v, want only file1", got)
	}
}

func TestRank_ExactDowngradesThresholdToPrefix(t *testing.T) {
	in := []Candidate{
		cand("echo", TierExact),
		cand("echo_extra", TierPrefix),
		cand("other", TierSubstring),
	}
	got := Rank(in)
	want := []string{"echo", "echo_extra"}
	var gotTexts []string
	for _, c := range got {
		gotTexts = append(gotTexts, c.Text)
	}
	if diff := cmp.Diff(want, gotTexts); diff != "" {
		t.Errorf("Rank() texts mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_NaturalOrderAndDedup(t *testing.T) {
	in := []Candidate{
		cand("file10", TierPrefix),
		cand("file2", TierPrefix),
		cand("file1", TierPrefix),
		cand("file1", TierPrefix), // duplicate text
	}
	got := Rank(in)
	var texts []string
	for _, c := range got {
		texts = append(texts, c.Text)
	}
	want := []string{"file1", "file2", "file10"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_SortedByTierAfterAlphabeticPass(t *testing.T) {
	in := []Candidate{
		cand("zzz", TierExact),
		cand("aaa", TierPrefix),
	}
	got := Rank(in)
	if got[0].Text != "zzz" || got[1].Text != "aaa" {
		t.Errorf("Rank() = %v, want tier order [zzz(EXACT), aaa(PREFIX)]", got)
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct{ a, b string }{
		{"file2", "file10"},
		{"abc", "abd"},
		{"Abc", "abd"},
	}
	for _, tc := range tests {
		if !naturalLess(tc.a, tc.b) {
			t.Errorf("naturalLess(%q, %q) = false, want true", tc.a, tc.b)
		}
	}
}
