// Package complete implements the completion driver, candidate model,
// generators, ranker and condition cache: everything that turns a parsed
// command line and a grammar chain into a ranked list of candidates.
package complete

import "strings"

// MatchTier is a closed, ordered enumeration of match quality. Lower
// values outrank higher ones.
type MatchTier int

const (
	TierExact MatchTier = iota
	TierPrefix
	TierPrefixCI
	TierSubstring
	TierSubstringCI
	TierSubsequenceInsert
	TierNone
)

func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "EXACT"
	case TierPrefix:
		return "PREFIX"
	case TierPrefixCI:
		return "PREFIX_CI"
	case TierSubstring:
		return "SUBSTRING"
	case TierSubstringCI:
		return "SUBSTRING_CI"
	case TierSubsequenceInsert:
		return "SUBSEQUENCE_INSERT"
	default:
		return "NONE"
	}
}

// RequiresFullReplacement reports whether a match at tier t must replace
// the whole token rather than simply append a suffix: true for every tier
// except EXACT and PREFIX.
func RequiresFullReplacement(tier MatchTier) bool {
	return tier != TierExact && tier != TierPrefix
}

// MatchDescriptor is the fuzzy-match quality of one candidate against the
// text it was matched against.
type MatchDescriptor struct {
	Tier     MatchTier
	CaseFold bool
}

// CandidateFlags is a bitset of per-candidate insertion behaviors.
type CandidateFlags uint8

const (
	ReplacesToken CandidateFlags = 1 << iota
	NoSpace
	// AutoSpace never survives past NewCandidate: it is resolved into
	// NoSpace or cleared at construction time and is never stored on a
	// Candidate.
	AutoSpace
	DontEscape
	DontEscapeTildes
)

// Candidate is one completion proposal.
type Candidate struct {
	Text        string
	Description string
	Match       MatchDescriptor
	Flags       CandidateFlags
}

// NewCandidate builds a Candidate, resolving AutoSpace: if flags has
// AutoSpace set, it is replaced with NoSpace when text ends in '/', '=',
// '@' or ':', and cleared otherwise. AutoSpace itself is never retained on
// the returned Candidate.
func NewCandidate(text, description string, match MatchDescriptor, flags CandidateFlags) Candidate {
	if flags&AutoSpace != 0 {
		flags &^= AutoSpace
		if endsInAutoSpaceTrigger(text) {
			flags |= NoSpace
		}
	}
	return Candidate{Text: text, Description: description, Match: match, Flags: flags}
}

func endsInAutoSpaceTrigger(text string) bool {
	if text == "" {
		return false
	}
	return strings.ContainsRune("/=@:", rune(text[len(text)-1]))
}
