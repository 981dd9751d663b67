package parse

import (
	"fmt"
	"unicode/utf8"

	"github.com/vially/fish-shell/pkg/diag"
)

// Error is a parse error. A parse that fails never returns a plain error;
// when the returned error is non-nil it always unpacks via UnpackErrors.
type Error struct {
	Message string
	Context diag.Context
	// Partial is true when the error was caused by input ending early, which
	// happens constantly while the user is still typing.
	Partial bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *Error) Range() diag.Ranging { return e.Context.Range() }

// Show renders the error the way diag.Error does: a one-line message
// followed by an indented, caret-pointing excerpt.
func (e *Error) Show(indent string) string {
	return e.Message + "\n" + indent + "  " + e.Context.ShowCompact(indent+"  ")
}

// multiError collects every Error produced during one parse.
type multiError []*Error

func (m multiError) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	s := fmt.Sprintf("%d parse errors", len(m))
	for _, e := range m {
		s += "; " + e.Error()
	}
	return s
}

// UnpackErrors returns the constituent parse errors of err, or nil if err
// does not come from this package.
func UnpackErrors(err error) []*Error {
	if m, ok := err.(multiError); ok {
		return m
	}
	if e, ok := err.(*Error); ok {
		return []*Error{e}
	}
	return nil
}

// Config names the parser's tolerance settings. The completion driver sets
// every flag, but the parser reads none of them: it always keeps going past
// the first error, accepts a token that trails off at EOF, and retains
// comments as Sep children.
type Config struct {
	ContinueAfterError  bool
	AcceptIncompleteTok bool
	IncludeComments     bool
}

const eof rune = -1

type parser struct {
	name string
	src  string
	pos  int
	cfg  Config
	errs multiError
}

func (ps *parser) peek() rune {
	if ps.pos >= len(ps.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(ps.src[ps.pos:])
	return r
}

func (ps *parser) at(n int) rune {
	p := ps.pos + n
	if p < 0 || p >= len(ps.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(ps.src[p:])
	return r
}

func (ps *parser) next() rune {
	if ps.pos >= len(ps.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(ps.src[ps.pos:])
	ps.pos += w
	return r
}

func (ps *parser) hasPrefix(s string) bool {
	return ps.pos+len(s) <= len(ps.src) && ps.src[ps.pos:ps.pos+len(s)] == s
}

func (ps *parser) errorAt(r diag.Ranging, format string, args ...any) {
	partial := r.To >= len(ps.src)
	ps.errs = append(ps.errs, &Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(ps.name, ps.src, r),
		Partial: partial,
	})
}

// parse parses a single node of concrete type N starting at the parser's
// current position, filling in its range and source text, and linking it as
// a child of parent (if non-nil).
func parse[N Node](ps *parser, n N, parent Node, body func(N)) N {
	begin := ps.pos
	body(n)
	nd := n.n()
	nd.From, nd.To = begin, ps.pos
	nd.sourceText = ps.src[begin:ps.pos]
	if parent != nil {
		parent.n().addChild(n)
		nd.parent = parent
	}
	return n
}

func (ps *parser) assembleError() error {
	if len(ps.errs) == 0 {
		return nil
	}
	return ps.errs
}
