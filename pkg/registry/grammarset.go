package registry

import "sort"

// GrammarSet is the per-command bundle: an ordered list of immutable
// registrations plus at most one legacy parser synthesised from the option
// list. A GrammarSet value is a snapshot: it shares *Registration pointers
// with the registry but is itself safe to use after the registry lock that
// produced it is released.
type GrammarSet struct {
	registrations []*Registration
	legacy        *legacyParser
}

func (s GrammarSet) parsers() []parser {
	out := make([]parser, 0, len(s.registrations)+1)
	for _, r := range s.registrations {
		out = append(out, r)
	}
	if s.legacy != nil {
		out = append(out, s.legacy)
	}
	return out
}

// Registrations returns the set's docopt-style registrations, in insertion
// order.
func (s GrammarSet) Registrations() []*Registration { return s.registrations }

// Validate runs every parser in the set against argv and merges the
// results: the i-th result is the best status any parser reports for
// argv[i].
func (s GrammarSet) Validate(argv []string) []Tier {
	merged := make([]Tier, len(argv))
	for _, p := range s.parsers() {
		for i, t := range p.validate(argv) {
			merged[i] = best(merged[i], t)
		}
	}
	return merged
}

// SuggestNextArgument concatenates suggestions from every parser in set
// order, then stable-sorts and deduplicates by token.
func (s GrammarSet) SuggestNextArgument(argv []string) []Suggestion {
	var all []Suggestion
	for _, p := range s.parsers() {
		all = append(all, p.suggestNextArgument(argv)...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Token < all[j].Token })
	seen := map[string]bool{}
	out := all[:0]
	for _, sg := range all {
		if seen[sg.Token] {
			continue
		}
		seen[sg.Token] = true
		out = append(out, sg)
	}
	return out
}

// ValueVarFor reports whether any docopt registration in the set declares
// opt as taking a "<name>" value, and returns that name.
func (s GrammarSet) ValueVarFor(opt string) (name string, ok bool) {
	for _, r := range s.registrations {
		if name, ok = r.ValueVarFor(opt); ok {
			return name, true
		}
	}
	return "", false
}

// ParseArguments runs every parser and merges their value maps
// first-writer-wins, trying the newest registration first so it wins any
// overlapping variable name, and intersects their unused-index sets.
func (s GrammarSet) ParseArguments(argv []string) (values map[string][]string, unusedIndices []int) {
	parsers := make([]parser, 0, len(s.registrations)+1)
	for i := len(s.registrations) - 1; i >= 0; i-- {
		parsers = append(parsers, s.registrations[i])
	}
	if s.legacy != nil {
		parsers = append(parsers, s.legacy)
	}
	values = map[string][]string{}
	var unusedSets []map[int]bool
	for _, p := range parsers {
		v, u := p.parseArguments(argv)
		for k, val := range v {
			if _, exists := values[k]; !exists {
				values[k] = val
			}
		}
		unusedSets = append(unusedSets, u)
	}

	for i := range argv {
		inAll := len(unusedSets) > 0
		for _, u := range unusedSets {
			if !u[i] {
				inAll = false
				break
			}
		}
		if inAll {
			unusedIndices = append(unusedIndices, i)
		}
	}
	return values, unusedIndices
}
