package complete

import (
	"testing"

	"github.com/vially/fish-shell/pkg/shellenv"
)

// "$PA" with env PATH, PAGER -> suffix candidates "TH" and "GER", tier
// PREFIX.
func TestGenerateVariables_Scenario2(t *testing.T) {
	got := GenerateVariables("$PA", []string{"PATH", "PAGER", "HOME"}, nil, false, false)
	texts := map[string]bool{}
	for _, c := range got {
		texts[c.Text] = true
		if c.Match.Tier != TierPrefix {
			t.Errorf("candidate %+v tier = %v, want PREFIX", c, c.Match.Tier)
		}
	}
	if !texts["TH"] || !texts["GER"] {
		t.Fatalf("candidates = %+v, want suffixes TH and GER", got)
	}
}

func TestGenerateVariables_NoDollarNoCandidates(t *testing.T) {
	if got := GenerateVariables("echo", []string{"PATH"}, nil, false, false); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestGenerateVariables_QuotedDollarIgnored(t *testing.T) {
	if got := GenerateVariables("'$PA'", []string{"PATH"}, nil, false, false); got != nil {
		t.Fatalf("got %+v, want nil (single-quoted $ is literal)", got)
	}
}

type fakeUserLister struct {
	names []string
	descs map[string]string
}

func (f fakeUserLister) Each(visit func(name string) bool) {
	for _, n := range f.names {
		if !visit(n) {
			return
		}
	}
}

func (f fakeUserLister) Desc(name string) string { return f.descs[name] }

// "~ro" with passwd containing "root" -> one candidate "ot", NO_SPACE, with
// the home-directory gloss "Home for root".
func TestGenerateUsers_Scenario3(t *testing.T) {
	caps := &shellenv.MainThreadCapability{Users: fakeUserLister{
		names: []string{"root"},
		descs: map[string]string{"root": "Home for root"},
	}}
	got := GenerateUsers("~ro", caps)
	if len(got) != 1 || got[0].Text != "ot" {
		t.Fatalf("got %+v, want one candidate with suffix \"ot\"", got)
	}
	if got[0].Flags&NoSpace == 0 {
		t.Errorf("flags = %v, want NO_SPACE set", got[0].Flags)
	}
	if got[0].Description != "Home for root" {
		t.Errorf("description = %q, want \"Home for root\"", got[0].Description)
	}
}

func TestGenerateUsers_NilCapabilitySkipped(t *testing.T) {
	if got := GenerateUsers("~ro", nil); got != nil {
		t.Fatalf("got %+v, want nil when off the main thread", got)
	}
}

func TestGenerateUsers_CaseInsensitiveIsFullReplacement(t *testing.T) {
	caps := &shellenv.MainThreadCapability{Users: fakeUserLister{names: []string{"Root"}}}
	got := GenerateUsers("~ro", caps)
	if len(got) != 1 || got[0].Text != "~Root" {
		t.Fatalf("got %+v, want full-replacement ~Root", got)
	}
	want := ReplacesToken | DontEscape | NoSpace
	if got[0].Flags != want {
		t.Errorf("flags = %v, want %v", got[0].Flags, want)
	}
}

type fakeExternal struct{ names []string }

func (f fakeExternal) EachExternal(visit func(name string) bool) {
	for _, n := range f.names {
		if !visit(n) {
			return
		}
	}
}

// "ec" with builtins including echo, no PATH -> first candidate "ho".
func TestGenerateCommands_Scenario1(t *testing.T) {
	in := CommandGeneratorInputs{Builtins: fakeBuiltins{names: []string{"echo"}}}
	got := GenerateCommands("ec", in, false)
	if len(got) != 1 || got[0].Text != "ho" {
		t.Fatalf("got %+v, want one candidate with suffix \"ho\"", got)
	}
	if got[0].Flags&ReplacesToken != 0 {
		t.Errorf("flags = %v, should not have REPLACES_TOKEN", got[0].Flags)
	}
}

type fakeBuiltins struct{ names []string }

func (f fakeBuiltins) GetNames() []string      { return f.names }
func (f fakeBuiltins) GetDesc(name string) string { return "" }

func TestGenerateCommands_SkipsUnderscoreFunctionsUnlessTyped(t *testing.T) {
	in := CommandGeneratorInputs{Funcs: fakeFuncs{names: []string{"_private", "public"}}}
	got := GenerateCommands("", in, false)
	for _, c := range got {
		if c.Text == "_private" {
			t.Fatalf("got %+v, should not suggest leading-underscore function", got)
		}
	}
	got = GenerateCommands("_", in, false)
	found := false
	for _, c := range got {
		if c.Text == "private" {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %+v, should suggest _private when token starts with _", got)
	}
}

type fakeFuncs struct{ names []string }

func (f fakeFuncs) GetNames() []string { return f.names }

type fakeArgsExpander struct {
	tokens []string
	err    error
}

func (f fakeArgsExpander) ExpandArgs(command string, mode shellenv.ArgsMode) ([]string, error) {
	return f.tokens, f.err
}

func TestGenerateArgs_MatchesPartial(t *testing.T) {
	exp := fakeArgsExpander{tokens: []string{"alpha", "beta", "gamma"}}
	got := GenerateArgs("some-cmd", "desc", "al", exp, shellenv.General, false)
	if len(got) != 1 || got[0].Text != "pha" {
		t.Fatalf("got %+v, want suffix completion \"pha\"", got)
	}
	if got[0].Description != "desc" {
		t.Errorf("description = %q, want \"desc\"", got[0].Description)
	}
}

func TestGenerateArgs_NilExpanderNoCandidates(t *testing.T) {
	if got := GenerateArgs("cmd", "", "", nil, shellenv.General, false); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}
