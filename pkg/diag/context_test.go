package diag

import (
	"strings"
	"testing"

	"github.com/vially/fish-shell/pkg/testutil"
)

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

var contextTests = []struct {
	name    string
	context *Context
	indent  string

	wantShow        string
	wantShowCompact string
}{
	{
		name:    "single-line culprit",
		context: contextInParen("[test]", "echo (bad)"),
		indent:  "_",

		wantShow:        "[test], line 1:\n_echo <(bad)>",
		wantShowCompact: "[test], line 1: echo <(bad)>",
	},
	{
		name:    "multi-line culprit",
		context: contextInParen("[test]", "echo (bad\nbad)\nmore"),
		indent:  "_",

		wantShow: "[test], line 1-2:\n_echo <(bad>\n_<bad)>",
		wantShowCompact: "[test], line 1-2: echo <(bad>\n" +
			"_                  <bad)>",
	},
	{
		name:    "empty culprit",
		context: NewContext("[test]", "echo x", Ranging{5, 5}),

		wantShow:        "[test], line 1:\necho <^>x",
		wantShowCompact: "[test], line 1: echo <^>x",
	},
	{
		name:            "unknown culprit range",
		context:         NewContext("[test]", "echo", Ranging{-1, -1}),
		wantShow:        "[test], unknown position",
		wantShowCompact: "[test], unknown position",
	},
	{
		name:            "invalid culprit range",
		context:         NewContext("[test]", "echo", Ranging{2, 1}),
		wantShow:        "[test], invalid position 2-1",
		wantShowCompact: "[test], invalid position 2-1",
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.context.Show(test.indent); got != test.wantShow {
				t.Errorf("Show() -> %q, want %q", got, test.wantShow)
			}
			if got := test.context.ShowCompact(test.indent); got != test.wantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q", got, test.wantShowCompact)
			}
		})
	}
}

// contextInParen returns a Context with the given name and source, ranged
// over the part between ( and ) inclusive.
func contextInParen(name, src string) *Context {
	return NewContext(name, src,
		Ranging{strings.Index(src, "("), strings.Index(src, ")") + 1})
}
