package registry

import (
	"strconv"
	"strings"
)

// legacyParser adapts a flat register_direct_options option list into the
// same parser interface a docopt Registration satisfies: the registry
// lazily builds one from the option list and caches it. Unlike a docopt
// grammar it has no positional structure: any non-option token is always
// valid (legacy option lists only constrain flags), and it contributes no
// positional suggestions.
type legacyParser struct {
	command string
	options []Option
}

func newLegacyParser(command string, options []Option) *legacyParser {
	cp := make([]Option, len(options))
	copy(cp, options)
	return &legacyParser{command: command, options: cp}
}

func (p *legacyParser) validate(argv []string) []Tier {
	tiers := make([]Tier, len(argv))
	if len(argv) == 0 {
		return tiers
	}
	tiers[0] = tierForCommand([]string{p.command}, argv[0])
	for i := 1; i < len(argv); i++ {
		tok := argv[i]
		if looksLikeOption(tok) {
			tiers[i] = p.tierForOption(tok)
		} else {
			tiers[i] = TierValid
		}
	}
	return tiers
}

func (p *legacyParser) tierForOption(tok string) Tier {
	base := tok
	if eq := strings.IndexByte(tok, '='); eq != -1 {
		base = tok[:eq]
	}
	t := TierInvalid
	for _, o := range p.options {
		if base == o.Spelling {
			return TierValid
		}
		if strings.HasPrefix(o.Spelling, base) {
			t = best(t, TierValidPrefix)
		}
	}
	return t
}

func (p *legacyParser) suggestNextArgument(argv []string) []Suggestion {
	out := make([]Suggestion, 0, len(p.options))
	for _, o := range p.options {
		out = append(out, Suggestion{
			Token:       o.Spelling,
			Command:     p.command,
			Condition:   o.Metadata.Condition,
			Description: o.Metadata.Description,
			Tag:         o.Metadata.Tag,
		})
	}
	return out
}

func (p *legacyParser) parseArguments(argv []string) (map[string][]string, map[int]bool) {
	values := map[string][]string{}
	unused := map[int]bool{}
	counts := map[string]int{}
	for i, tok := range argv {
		switch {
		case i == 0:
			if tok != p.command {
				unused[i] = true
			}
		case looksLikeOption(tok):
			base := tok
			if eq := strings.IndexByte(tok, '='); eq != -1 {
				base = tok[:eq]
			}
			if p.tierForOption(tok) == TierInvalid {
				unused[i] = true
			} else {
				counts[base]++
			}
		}
		// Non-option positionals are always considered valid but carry no
		// variable name to record a value under.
	}
	for name, n := range counts {
		values[name] = []string{strconv.Itoa(n)}
	}
	return values, unused
}
