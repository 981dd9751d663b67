package parse

import (
	"strconv"

	"github.com/vially/fish-shell/pkg/diag"
)

// Parse parses src under cfg and returns the resulting tree. When cfg has
// ContinueAfterError set the returned *Chunk is always non-nil, even when err
// is non-nil too: the driver runs on a best-effort tree while the user is
// mid-keystroke.
func Parse(src Source, cfg Config) (*Chunk, error) {
	ps := &parser{name: src.Name, src: src.Code, cfg: cfg}
	root := parse(ps, &Chunk{}, nil, func(c *Chunk) { parseChunk(ps, c) })
	if ps.pos != len(ps.src) {
		ps.errorAt(diag.Ranging{From: ps.pos, To: ps.pos + 1}, "unexpected character %q", ps.peek())
	}
	return root, ps.assembleError()
}

func parseChunk(ps *parser, c *Chunk) {
	parseSeps(ps, c)
	for startsWord(ps.peek()) {
		p := parse(ps, &Pipeline{}, c, func(p *Pipeline) { parsePipeline(ps, p) })
		c.Pipelines = append(c.Pipelines, p)
		if parseSeps(ps, c) == 0 {
			break
		}
	}
}

// parseSeps consumes a (possibly empty) run of whitespace, comments and
// statement terminators, each as its own Sep child of parent, and returns how
// many terminators (';' or '\n') were seen.
func parseSeps(ps *parser, parent Node) int {
	n := 0
	for {
		switch r := ps.peek(); {
		case r == '\n' || r == ';':
			parseOneCharSep(ps, parent)
			n++
		case isSpace(r):
			parseSpacesSep(ps, parent)
		case r == '#':
			parseCommentSep(ps, parent)
		default:
			return n
		}
	}
}

func parseOneCharSep(ps *parser, parent Node) {
	parse(ps, &Sep{}, parent, func(s *Sep) { ps.next() })
}

func parseSpacesSep(ps *parser, parent Node) {
	parse(ps, &Sep{}, parent, func(s *Sep) {
		for isSpace(ps.peek()) {
			ps.next()
		}
	})
}

func parseCommentSep(ps *parser, parent Node) {
	parse(ps, &Sep{}, parent, func(s *Sep) {
		parse(ps, &Comment{}, s, func(c *Comment) {
			for ps.peek() != eof && ps.peek() != '\n' {
				ps.next()
			}
		})
	})
}

func parsePipeline(ps *parser, p *Pipeline) {
	s := parse(ps, &Statement{}, p, func(s *Statement) { parseStatement(ps, s) })
	p.Statements = append(p.Statements, s)
	for ps.peek() == '|' && ps.at(1) != '|' {
		parseOneCharSep(ps, p)
		if isSpace(ps.peek()) {
			parseSpacesSep(ps, p)
		}
		s := parse(ps, &Statement{}, p, func(s *Statement) { parseStatement(ps, s) })
		p.Statements = append(p.Statements, s)
	}
	if isSpace(ps.peek()) {
		parseSpacesSep(ps, p)
	}
	if ps.peek() == '&' {
		parseOneCharSep(ps, p)
		p.Background = true
	}
}

// peekDecorationWord looks ahead for a "command"/"builtin"/"exec" keyword
// followed by at least one space, without consuming anything. Without the
// trailing space a word like "command" on its own is just a literal command
// name: decorations only narrow command position.
func peekDecorationWord(ps *parser) (string, bool) {
	save := ps.pos
	defer func() { ps.pos = save }()

	start := ps.pos
	for !isBarewordBreak(ps.peek()) {
		ps.next()
	}
	w := ps.src[start:ps.pos]
	if w != "command" && w != "builtin" && w != "exec" {
		return "", false
	}
	if !isSpace(ps.peek()) {
		return "", false
	}
	return w, true
}

func parseStatement(ps *parser, s *Statement) {
	if w, ok := peekDecorationWord(ps); ok {
		for !isBarewordBreak(ps.peek()) {
			ps.next()
		}
		if w == "builtin" {
			s.Decoration = Builtin
		} else {
			s.Decoration = Command
		}
		if isSpace(ps.peek()) {
			parseSpacesSep(ps, s)
		}
	}

	if !startsWord(ps.peek()) {
		return
	}
	s.Head = parse(ps, &Compound{}, s, func(c *Compound) { parseCompound(ps, c) })

	for isSpace(ps.peek()) {
		parseSpacesSep(ps, s)
		switch {
		case isRedirStart(ps):
			r := parse(ps, &Redir{}, s, func(r *Redir) { parseRedir(ps, r) })
			s.Redirs = append(s.Redirs, r)
		case startsWord(ps.peek()):
			a := parse(ps, &Compound{}, s, func(c *Compound) { parseCompound(ps, c) })
			s.Args = append(s.Args, a)
		default:
			return
		}
	}
}

func isRedirStart(ps *parser) bool {
	i := 0
	for isDigit(ps.at(i)) {
		i++
	}
	r := ps.at(i)
	return r == '<' || r == '>'
}

func parseRedir(ps *parser, r *Redir) {
	r.FD = -1
	start := ps.pos
	for isDigit(ps.peek()) {
		ps.next()
	}
	if ps.pos > start {
		if fd, err := strconv.Atoi(ps.src[start:ps.pos]); err == nil {
			r.FD = fd
		}
	}

	switch {
	case ps.hasPrefix(">>"):
		ps.next()
		ps.next()
		r.Mode = RedirAppend
	case ps.hasPrefix("<>"):
		ps.next()
		ps.next()
		r.Mode = RedirInOut
	case ps.peek() == '>':
		ps.next()
		r.Mode = RedirOut
	case ps.peek() == '<':
		ps.next()
		r.Mode = RedirIn
	}

	if isSpace(ps.peek()) {
		parseSpacesSep(ps, r)
	}
	if startsWord(ps.peek()) {
		r.Target = parse(ps, &Compound{}, r, func(c *Compound) { parseCompound(ps, c) })
	}
}

func parseCompound(ps *parser, c *Compound) {
	for startsWord(ps.peek()) {
		var p *Primary
		switch {
		case ps.peek() == '\'':
			p = parse(ps, &Primary{}, c, func(p *Primary) { parseSingleQuoted(ps, p) })
		case ps.peek() == '"':
			p = parse(ps, &Primary{}, c, func(p *Primary) { parseDoubleQuoted(ps, p) })
		case ps.peek() == '(' || (ps.peek() == '$' && ps.at(1) == '('):
			p = parse(ps, &Primary{}, c, func(p *Primary) { parseOutputCapture(ps, p) })
		default:
			p = parse(ps, &Primary{}, c, func(p *Primary) { parseBareword(ps, p) })
		}
		c.Parts = append(c.Parts, p)
		if len(p.sourceText) == 0 {
			// Zero-width primary: nothing was consumed (shouldn't normally
			// happen given the startsWord guard, but avoids an infinite loop
			// if it ever does).
			break
		}
	}
}

func parseBareword(ps *parser, p *Primary) {
	p.Type = Bareword
	var buf []rune
	for {
		r := ps.peek()
		if r == '\\' && ps.at(1) != eof {
			ps.next()
			buf = append(buf, ps.next())
			continue
		}
		if isBarewordBreak(r) {
			break
		}
		buf = append(buf, ps.next())
	}
	p.Value = string(buf)
}

func parseSingleQuoted(ps *parser, p *Primary) {
	p.Type = SingleQuoted
	ps.next() // opening '
	var buf []rune
	for {
		switch ps.peek() {
		case eof:
			ps.errorAt(diag.Ranging{From: ps.pos, To: ps.pos}, "single-quoted string not terminated")
			p.Value = string(buf)
			return
		case '\'':
			if ps.at(1) == '\'' {
				ps.next()
				ps.next()
				buf = append(buf, '\'')
				continue
			}
			ps.next()
			p.Value = string(buf)
			return
		default:
			buf = append(buf, ps.next())
		}
	}
}

func parseDoubleQuoted(ps *parser, p *Primary) {
	p.Type = DoubleQuoted
	ps.next() // opening "
	var buf []rune
	for {
		switch ps.peek() {
		case eof:
			ps.errorAt(diag.Ranging{From: ps.pos, To: ps.pos}, "double-quoted string not terminated")
			p.Value = string(buf)
			return
		case '"':
			ps.next()
			p.Value = string(buf)
			return
		case '\\':
			if ps.at(1) == eof {
				buf = append(buf, ps.next())
				continue
			}
			ps.next()
			buf = append(buf, ps.next())
		default:
			buf = append(buf, ps.next())
		}
	}
}

func parseOutputCapture(ps *parser, p *Primary) {
	p.Type = OutputCapture
	if ps.peek() == '$' {
		ps.next()
	}
	ps.next() // '('
	p.Body = parse(ps, &Chunk{}, p, func(c *Chunk) { parseChunk(ps, c) })
	if ps.peek() == ')' {
		ps.next()
	} else {
		ps.errorAt(diag.Ranging{From: ps.pos, To: ps.pos}, "command substitution not terminated")
	}
}
