package registry

import (
	"fmt"
	"strings"

	docopt "github.com/docopt/docopt-go"
)

// termKind is a closed enumeration of the kinds of term a compiled usage
// pattern can hold.
type termKind int

const (
	termLiteral termKind = iota
	termOption
	termVariable
)

// term is one element of a compiled usage pattern's flattened sequence.
type term struct {
	Kind       termKind
	Text       string // literal text, option spelling (with dashes), or "<name>"
	Optional   bool
	Repeatable bool

	// ValueVar is the variable name an option term takes after "=", e.g.
	// "file" for "--opt=<file>"; empty for options taking no value. It is
	// reported by ValueVarFor; suggestAgainst never offers it as a
	// suggestion of its own.
	ValueVar string
}

func (t term) variableName() string {
	return strings.TrimSuffix(strings.TrimPrefix(t.Text, "<"), ">")
}

// compiledGrammar is the opaque parsed grammar handle a Registration holds.
// docopt-go validates the overall doc syntax (it is a real docopt
// implementation and will reject the malformed constructs its grammar
// forbids); the term sequence used for validate/suggest/parse is built by a
// hand-written compiler below, because docopt-go's public surface only
// supports "does this whole argv satisfy the pattern", not "what can
// validly come next" (see DESIGN.md).
type compiledGrammar struct {
	commands []string // distinct leading command tokens seen across usage lines
	terms    []term   // flattened sequence compiled from the first usage line
}

// compileGrammar parses usage (a docopt "Usage:" block, optionally preceded
// by free-form description text) and returns a compiledGrammar, or a
// *docopt.LanguageError-derived error if the doc itself is malformed.
func compileGrammar(usage string) (*compiledGrammar, error) {
	parser := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}
	if _, err := parser.ParseArgs(usage, []string{}, ""); err != nil {
		if _, malformed := err.(*docopt.LanguageError); malformed {
			return nil, fmt.Errorf("grammar parse error: %w", err)
		}
		// Any other error just means an empty argv doesn't satisfy the
		// pattern (e.g. a required positional is missing), which is
		// expected here: we only probed docopt-go to validate doc syntax.
	}

	lines := usageLines(usage)
	if len(lines) == 0 {
		return nil, fmt.Errorf("grammar parse error: no \"Usage:\" line found")
	}

	seen := map[string]bool{}
	var commands []string
	for _, line := range lines {
		tokens := tokenizeUsageLine(line)
		if len(tokens) == 0 {
			continue
		}
		cmd := tokens[0]
		if !seen[cmd] {
			seen[cmd] = true
			commands = append(commands, cmd)
		}
	}

	terms, err := compileTerms(tokenizeUsageLine(lines[0])[1:])
	if err != nil {
		return nil, err
	}

	return &compiledGrammar{commands: commands, terms: terms}, nil
}

// usageLines extracts the non-empty, indented lines following a "Usage:"
// header, the way docopt itself does.
func usageLines(usage string) []string {
	idx := strings.Index(strings.ToLower(usage), "usage:")
	if idx == -1 {
		return nil
	}
	rest := usage[idx+len("usage:"):]
	var lines []string
	for _, raw := range strings.Split(rest, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if lines != nil {
				break // blank line ends the usage block
			}
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// tokenizeUsageLine splits a usage line on whitespace, keeping bracketed
// groups like "[--foo=<bar>]" as one token (our compiler only supports one
// level of [...] nesting, which covers the overwhelming majority of
// completion usage strings; see DESIGN.md for the documented limitation).
func tokenizeUsageLine(line string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch r {
		case '[':
			depth++
			cur.WriteRune(r)
		case ']':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case ' ', '\t':
			if depth == 0 {
				flush()
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func compileTerms(tokens []string) ([]term, error) {
	terms := make([]term, 0, len(tokens))
	for _, tok := range tokens {
		t, err := compileTerm(tok)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func compileTerm(tok string) (term, error) {
	t := term{Text: tok}
	if strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") {
		t.Optional = true
		tok = tok[1 : len(tok)-1]
	}
	if strings.HasSuffix(tok, "...") {
		t.Repeatable = true
		tok = strings.TrimSuffix(tok, "...")
	}
	t.Text = tok

	switch {
	case tok == "":
		t.Kind = termLiteral
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
		t.Kind = termVariable
	case strings.HasPrefix(tok, "--") || strings.HasPrefix(tok, "-"):
		t.Kind = termOption
		if eq := strings.IndexByte(tok, '='); eq != -1 {
			t.Text = tok[:eq]
			val := tok[eq+1:]
			if strings.HasPrefix(val, "<") && strings.HasSuffix(val, ">") {
				t.ValueVar = strings.TrimSuffix(strings.TrimPrefix(val, "<"), ">")
			}
		}
	default:
		t.Kind = termLiteral
	}
	return t, nil
}
