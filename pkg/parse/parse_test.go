package parse

import (
	"testing"

	"github.com/vially/fish-shell/pkg/tt"
)

func mustParse(t *testing.T, code string) *Chunk {
	t.Helper()
	tree, err := Parse(SourceForTest(code), Config{})
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", code, err)
	}
	return tree
}

func TestParse_SimpleStatement(t *testing.T) {
	tree := mustParse(t, "git commit -m foo")
	if len(tree.Pipelines) != 1 {
		t.Fatalf("got %d pipelines, want 1", len(tree.Pipelines))
	}
	st := tree.Pipelines[0].Statements[0]
	if st.Head.SourceText() != "git" {
		t.Errorf("head = %q, want %q", st.Head.SourceText(), "git")
	}
	if len(st.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(st.Args))
	}
	if st.Args[0].SourceText() != "commit" || st.Args[1].SourceText() != "-m" {
		t.Errorf("args = %q, %q", st.Args[0].SourceText(), st.Args[1].SourceText())
	}
}

func TestParse_Decoration(t *testing.T) {
	tests := []struct {
		code string
		want Decoration
	}{
		{"command ls", Command},
		{"builtin cd", Builtin},
		{"exec sh", Command},
		{"command", NoDecoration}, // bare word, no trailing space: literal head
		{"ls", NoDecoration},
	}
	for _, tc := range tests {
		tree := mustParse(t, tc.code)
		if len(tree.Pipelines) == 0 {
			t.Errorf("%q: no pipelines parsed", tc.code)
			continue
		}
		st := tree.Pipelines[0].Statements[0]
		if st.Decoration != tc.want {
			t.Errorf("%q: decoration = %v, want %v", tc.code, st.Decoration, tc.want)
		}
	}
}

func TestParse_Pipeline(t *testing.T) {
	tree := mustParse(t, "ls | grep foo")
	pl := tree.Pipelines[0]
	if len(pl.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(pl.Statements))
	}
	if pl.Statements[1].Head.SourceText() != "grep" {
		t.Errorf("second head = %q", pl.Statements[1].Head.SourceText())
	}
}

func TestParse_Background(t *testing.T) {
	tree := mustParse(t, "sleep 10 &")
	if !tree.Pipelines[0].Background {
		t.Errorf("Background = false, want true")
	}
}

func TestParse_Redir(t *testing.T) {
	tree := mustParse(t, "cmd 2>> log.txt")
	st := tree.Pipelines[0].Statements[0]
	if len(st.Redirs) != 1 {
		t.Fatalf("got %d redirs, want 1", len(st.Redirs))
	}
	r := st.Redirs[0]
	if r.FD != 2 || r.Mode != RedirAppend || r.Target.SourceText() != "log.txt" {
		t.Errorf("redir = %+v, target %q", r, r.Target.SourceText())
	}
}

func TestParse_Quoting(t *testing.T) {
	headValue := func(code string) string {
		tree, _ := Parse(SourceForTest(code), Config{})
		return tree.Pipelines[0].Statements[0].Head.Parts[0].Value
	}
	tt.Test(t, tt.Fn("headValue", headValue), tt.Table{
		tt.Args(`'single'`).Rets("single"),
		tt.Args(`'it''s'`).Rets("it's"),
		tt.Args(`"dou\"ble"`).Rets(`dou"ble`),
		tt.Args(`bare\ word`).Rets("bare word"),
	})
}

func TestParse_OutputCapture(t *testing.T) {
	tree := mustParse(t, "echo (git branch --show-current)")
	st := tree.Pipelines[0].Statements[0]
	arg := st.Args[0]
	if len(arg.Parts) != 1 || arg.Parts[0].Type != OutputCapture {
		t.Fatalf("arg parts = %+v", arg.Parts)
	}
	body := arg.Parts[0].Body
	if body == nil || len(body.Pipelines) != 1 {
		t.Fatalf("capture body = %+v", body)
	}
	if body.Pipelines[0].Statements[0].Head.SourceText() != "git" {
		t.Errorf("capture head = %q", body.Pipelines[0].Statements[0].Head.SourceText())
	}
}

func TestParse_UnterminatedSingleQuote(t *testing.T) {
	_, err := Parse(SourceForTest(`echo 'unterminated`), Config{ContinueAfterError: true})
	errs := UnpackErrors(err)
	if len(errs) == 0 {
		t.Fatalf("expected a parse error")
	}
	if !errs[0].Partial {
		t.Errorf("expected Partial error for input ending mid-token")
	}
}

func TestFindPath(t *testing.T) {
	code := "git commit -m foo"
	tree := mustParse(t, code)
	pos := len("git comm") // inside "commit"
	path := FindPath(tree, pos)
	leaf := Leaf(path)
	if leaf == nil || leaf.SourceText() != "commit" {
		t.Fatalf("leaf at %d = %v, want \"commit\"", pos, leaf)
	}
	comp := EnclosingCompound(path)
	if comp == nil || comp.SourceText() != "commit" {
		t.Errorf("enclosing compound = %v", comp)
	}
}

func TestInnermostChunk(t *testing.T) {
	code := "echo (git com)"
	tree := mustParse(t, code)
	pos := len("echo (git com")
	inner := InnermostChunk(tree, pos)
	if len(inner.Pipelines) != 1 || inner.Pipelines[0].Statements[0].Head.SourceText() != "git" {
		t.Fatalf("innermost chunk = %#v", inner)
	}
}
