package complete

import (
	"testing"

	"github.com/vially/fish-shell/pkg/registry"
	"github.com/vially/fish-shell/pkg/shellenv"
)

type fakeFileExpander struct {
	files []string
}

func (f fakeFileExpander) ExpandFiles(token string, opts FileExpandOptions) ([]Candidate, error) {
	var out []Candidate
	for _, name := range f.files {
		if m, ok := Match(token, name, opts.FuzzyMatch); ok {
			out = append(out, buildNameCandidate("", token, name, m, "", 0))
		}
	}
	return out, nil
}

// After registering "foo --bar", "foo -" at end suggests "--bar" with
// REPLACES_TOKEN.
func TestComplete_Scenario4(t *testing.T) {
	reg := registry.New(nil)
	if err := reg.RegisterUsage("foo", "", "Usage:\n  foo --bar", ""); err != nil {
		t.Fatal(err)
	}
	deps := Deps{Env: shellenv.NewSnapshot(nil), Registry: reg}

	res, err := Complete("foo -", 5, FuzzyMatch, deps)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range res.Candidates {
		if c.Text == "--bar" && c.Flags&ReplacesToken != 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("candidates %+v missing full-replacement --bar", res.Candidates)
	}
}

// "foo --opt=fi" with files file1, file2 present yields "le1"/"le2" suffix
// candidates repaired to keep the "--opt=" prefix on any REPLACES_TOKEN
// candidate.
func TestComplete_Scenario6(t *testing.T) {
	reg := registry.New(nil)
	if err := reg.RegisterUsage("foo", "", "Usage:\n  foo --opt=<file>", ""); err != nil {
		t.Fatal(err)
	}
	deps := Deps{
		Env:      shellenv.NewSnapshot(nil),
		Registry: reg,
		Files:    fakeFileExpander{files: []string{"file1", "file2"}},
	}

	res, err := Complete("foo --opt=fi", 12, FuzzyMatch, deps)
	if err != nil {
		t.Fatal(err)
	}
	texts := map[string]bool{}
	for _, c := range res.Candidates {
		texts[c.Text] = true
	}
	if !texts["le1"] || !texts["le2"] {
		t.Fatalf("candidates %+v missing le1/le2", res.Candidates)
	}
}

func TestComplete_NonCommandContextFallsBackToFiles(t *testing.T) {
	deps := Deps{
		Env:   shellenv.NewSnapshot(nil),
		Files: fakeFileExpander{files: []string{"readme.txt"}},
	}
	res, err := Complete("> rea", 5, 0, deps)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range res.Candidates {
		if c.Text == "dme.txt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("candidates %+v missing readme suffix", res.Candidates)
	}
}

type fakeConditionEvaluator struct{ result bool }

func (f fakeConditionEvaluator) EvalCondition(condition string) (bool, error) {
	return f.result, nil
}

// A registration's condition must hold for its suggestions to be offered
// at all; a false condition suppresses them exactly as if the registration
// were never installed, so files fall back to forced-on rather than
// suppressed.
func TestComplete_FalseConditionSuppressesSuggestionNotFiles(t *testing.T) {
	reg := registry.New(nil)
	if err := reg.RegisterUsage("foo", "only-on-bash", "Usage:\n  foo --bar", ""); err != nil {
		t.Fatal(err)
	}
	deps := Deps{
		Env:      shellenv.NewSnapshot(nil),
		Registry: reg,
		Files:    fakeFileExpander{files: []string{"README"}},
		Main:     &shellenv.MainThreadCapability{Conditions: fakeConditionEvaluator{result: false}},
	}

	res, err := Complete("foo -", 5, FuzzyMatch, deps)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range res.Candidates {
		if c.Text == "--bar" {
			t.Fatalf("candidates %+v should not contain --bar when its condition is false", res.Candidates)
		}
	}
}

// The same registration with a true condition still offers --bar.
func TestComplete_TrueConditionKeepsSuggestion(t *testing.T) {
	reg := registry.New(nil)
	if err := reg.RegisterUsage("foo", "only-on-bash", "Usage:\n  foo --bar", ""); err != nil {
		t.Fatal(err)
	}
	deps := Deps{
		Env:      shellenv.NewSnapshot(nil),
		Registry: reg,
		Main:     &shellenv.MainThreadCapability{Conditions: fakeConditionEvaluator{result: true}},
	}

	res, err := Complete("foo -", 5, FuzzyMatch, deps)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range res.Candidates {
		if c.Text == "--bar" {
			found = true
		}
	}
	if !found {
		t.Fatalf("candidates %+v missing --bar when its condition is true", res.Candidates)
	}
}

// Autosuggest mode never evaluates the condition evaluator at all: a
// condition is false by construction, even one that would otherwise
// evaluate true.
func TestComplete_AutosuggestNeverEvaluatesCondition(t *testing.T) {
	reg := registry.New(nil)
	if err := reg.RegisterUsage("foo", "always-true", "Usage:\n  foo --bar", ""); err != nil {
		t.Fatal(err)
	}
	deps := Deps{
		Env:      shellenv.NewSnapshot(nil),
		Registry: reg,
	}

	res, err := Complete("foo -", 5, FuzzyMatch|Autosuggestion, deps)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range res.Candidates {
		if c.Text == "--bar" {
			t.Fatalf("candidates %+v should not contain --bar in autosuggest mode", res.Candidates)
		}
	}
}

func TestComplete_VariableExpansionShortCircuits(t *testing.T) {
	env := shellenv.NewSnapshot(map[string]string{"PATH": "/bin", "PAGER": "less"})
	deps := Deps{Env: env}
	res, err := Complete("echo $PA", 8, 0, deps)
	if err != nil {
		t.Fatal(err)
	}
	texts := map[string]bool{}
	for _, c := range res.Candidates {
		texts[c.Text] = true
	}
	if !texts["TH"] || !texts["GER"] {
		t.Fatalf("candidates %+v, want TH and GER", res.Candidates)
	}
}
