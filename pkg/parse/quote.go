package parse

import "strings"

// Quote returns s quoted the way PrimaryType t would represent it, so that a
// generator can render a Candidate.Text using whatever quoting style the
// word under the cursor already started with.
func Quote(t PrimaryType, s string) string {
	switch t {
	case SingleQuoted:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	case DoubleQuoted:
		var b strings.Builder
		b.WriteByte('"')
		for _, r := range s {
			switch r {
			case '"', '\\', '$':
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
		return b.String()
	default:
		return quoteBareword(s)
	}
}

// quoteBareword backslash-escapes the characters that would otherwise break
// out of, or be swallowed by, bareword scanning.
func quoteBareword(s string) string {
	if s == "" {
		return "''"
	}
	var b strings.Builder
	for _, r := range s {
		if isBarewordBreak(r) || r == '\\' || r == '$' || r == '~' || r == '*' || r == '?' || r == '{' || r == '}' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ShellEscape renders s as a single shell word using the minimal quoting
// that round-trips it, for diagnostic dumps such as registry.PrintRegistry,
// where every user string must come out shell-escaped. A newline is written
// as an unquoted \n escape between the escaped runs around it, so the word
// never spans more than one line.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Contains(s, "\n") {
		parts := strings.Split(s, "\n")
		for i, p := range parts {
			if p != "" {
				parts[i] = ShellEscape(p)
			}
		}
		return strings.Join(parts, `\n`)
	}
	plain := true
	for _, r := range s {
		if isBarewordBreak(r) || r == '\\' || r == '$' || r == '~' || r == '*' || r == '?' || r == '{' || r == '}' || r == '!' || r == '%' {
			plain = false
			break
		}
	}
	if plain {
		return s
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return Quote(DoubleQuoted, s)
}
