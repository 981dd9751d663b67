package registry

import (
	"strconv"
	"strings"
)

// parser is satisfied by both *Registration (docopt-style) and
// *legacyParser (flat option list), so GrammarSet can treat every member of
// a set uniformly: each validates, suggests, and parses independently of the
// others in the set.
type parser interface {
	validate(argv []string) []Tier
	suggestNextArgument(argv []string) []Suggestion
	parseArguments(argv []string) (values map[string][]string, unused map[int]bool)
}

// Registration is an immutable record of one register_usage call. It is
// never mutated after construction; GrammarSet snapshots share the same
// *Registration values under the registry lock and are safe to read after
// the lock is released.
type Registration struct {
	Usage       string
	Description string
	Condition   string
	grammar     *compiledGrammar
	id          uint64
}

// ID is the monotonic registration counter used to order print_registry
// output.
func (r *Registration) ID() uint64 { return r.id }

func looksLikeOption(tok string) bool {
	return len(tok) > 0 && tok[0] == '-' && tok != "-"
}

func filterPositional(terms []term) []term {
	var out []term
	for _, t := range terms {
		if t.Kind != termOption {
			out = append(out, t)
		}
	}
	return out
}

// nextPositionalTerm returns the positional term that would be consumed at
// positional-slot idx (0-based, counting only non-option argv tokens seen so
// far), honoring a trailing repeatable term that keeps matching forever.
func nextPositionalTerm(positional []term, idx int) (term, bool) {
	if len(positional) == 0 {
		return term{}, false
	}
	if idx < len(positional) {
		return positional[idx], true
	}
	last := positional[len(positional)-1]
	if last.Repeatable {
		return last, true
	}
	return term{}, false
}

func tierForCommand(commands []string, tok string) Tier {
	t := TierInvalid
	for _, c := range commands {
		if tok == c {
			return TierValid
		}
		if strings.HasPrefix(c, tok) {
			t = best(t, TierValidPrefix)
		}
	}
	return t
}

func tierForLiteral(want, got string) Tier {
	if got == want {
		return TierValid
	}
	if strings.HasPrefix(want, got) {
		return TierValidPrefix
	}
	return TierInvalid
}

func tierForOption(terms []term, tok string) Tier {
	base := tok
	if eq := strings.IndexByte(tok, '='); eq != -1 {
		base = tok[:eq]
	}
	t := TierInvalid
	for _, term := range terms {
		if term.Kind != termOption {
			continue
		}
		if base == term.Text {
			return TierValid
		}
		if strings.HasPrefix(term.Text, base) {
			t = best(t, TierValidPrefix)
		}
	}
	return t
}

func (r *Registration) validate(argv []string) []Tier {
	return validateAgainst(r.grammar.commands, r.grammar.terms, argv)
}

func validateAgainst(commands []string, terms []term, argv []string) []Tier {
	tiers := make([]Tier, len(argv))
	if len(argv) == 0 {
		return tiers
	}
	tiers[0] = tierForCommand(commands, argv[0])

	positional := filterPositional(terms)
	posIdx := 0
	for i := 1; i < len(argv); i++ {
		tok := argv[i]
		if looksLikeOption(tok) {
			tiers[i] = tierForOption(terms, tok)
			continue
		}
		pt, ok := nextPositionalTerm(positional, posIdx)
		switch {
		case !ok:
			tiers[i] = TierInvalid
		case pt.Kind == termVariable:
			tiers[i] = TierValid
		default:
			tiers[i] = tierForLiteral(pt.Text, tok)
		}
		if !ok || !pt.Repeatable {
			posIdx++
		}
	}
	return tiers
}

// ValueVarFor returns the name of the value variable taken by the option
// spelled opt (without any "=value" suffix), e.g.
// ValueVarFor("--opt") on a grammar compiled from "--opt=<file>" returns
// ("file", true). ok is false if opt takes no value in this grammar.
func (r *Registration) ValueVarFor(opt string) (name string, ok bool) {
	for _, t := range r.grammar.terms {
		if t.Kind == termOption && t.Text == opt && t.ValueVar != "" {
			return t.ValueVar, true
		}
	}
	return "", false
}

func (r *Registration) suggestNextArgument(argv []string) []Suggestion {
	return suggestAgainst(r.grammar.terms, argv, r.Condition)
}

func suggestAgainst(terms []term, argv []string, condition string) []Suggestion {
	var out []Suggestion
	for _, t := range terms {
		if t.Kind == termOption {
			out = append(out, Suggestion{Token: t.Text, Condition: condition})
		}
	}

	positional := filterPositional(terms)
	consumed := countConsumedPositionals(argv)
	if pt, ok := nextPositionalTerm(positional, consumed); ok {
		switch pt.Kind {
		case termLiteral:
			out = append(out, Suggestion{Token: pt.Text, Condition: condition})
		case termVariable:
			// A bare docopt variable is always tagged AllowFiles:
			// nothing in the grammar itself says otherwise, and no
			// legacy option overrides the tag.
			out = append(out, Suggestion{Token: pt.Text, Condition: condition, Tag: AllowFiles})
		}
	}
	return out
}

// countConsumedPositionals counts the non-option tokens in argv after the
// command name (argv[0]), which is how many positional slots have already
// been filled.
func countConsumedPositionals(argv []string) int {
	n := 0
	for i := 1; i < len(argv); i++ {
		if !looksLikeOption(argv[i]) {
			n++
		}
	}
	return n
}

func (r *Registration) parseArguments(argv []string) (map[string][]string, map[int]bool) {
	return parseAgainst(r.grammar.commands, r.grammar.terms, argv)
}

func parseAgainst(commands []string, terms []term, argv []string) (map[string][]string, map[int]bool) {
	values := map[string][]string{}
	unused := map[int]bool{}
	counts := map[string]int{}

	positional := filterPositional(terms)
	posIdx := 0
	for i, tok := range argv {
		if i == 0 {
			if tierForCommand(commands, tok) == TierInvalid {
				unused[i] = true
			} else {
				counts[tok]++
			}
			continue
		}
		if looksLikeOption(tok) {
			base := tok
			if eq := strings.IndexByte(tok, '='); eq != -1 {
				base = tok[:eq]
			}
			if tierForOption(terms, tok) == TierInvalid {
				unused[i] = true
			} else {
				counts[base]++
			}
			continue
		}
		pt, ok := nextPositionalTerm(positional, posIdx)
		if !ok {
			unused[i] = true
			continue
		}
		if pt.Kind == termVariable {
			name := pt.variableName()
			values[name] = append(values[name], tok)
		} else if tierForLiteral(pt.Text, tok) == TierInvalid {
			unused[i] = true
		} else {
			counts[pt.Text]++
		}
		if !pt.Repeatable {
			posIdx++
		}
	}
	for name, n := range counts {
		values[name] = []string{strconv.Itoa(n)}
	}
	return values, unused
}
