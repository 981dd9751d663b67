package complete

import "strings"

// Match compares needle (what the user typed so far) against candidate (a
// full known name) and returns the best MatchDescriptor, or ok=false if
// candidate does not match at all (tier NONE).
//
// allowFuzzy controls whether SUBSTRING/SUBSTRING_CI/SUBSEQUENCE_INSERT
// tiers are considered; when false (RequestFlags lacks FUZZY_MATCH) only
// EXACT/PREFIX/PREFIX_CI are tried, matching the conservative behavior a
// plain tab-completion does versus an explicit fuzzy search.
func Match(needle, candidate string, allowFuzzy bool) (MatchDescriptor, bool) {
	if needle == "" {
		return MatchDescriptor{Tier: TierPrefix}, true
	}
	if needle == candidate {
		return MatchDescriptor{Tier: TierExact}, true
	}
	if strings.HasPrefix(candidate, needle) {
		return MatchDescriptor{Tier: TierPrefix}, true
	}

	needleLower := strings.ToLower(needle)
	candidateLower := strings.ToLower(candidate)
	if strings.HasPrefix(candidateLower, needleLower) {
		return MatchDescriptor{Tier: TierPrefixCI, CaseFold: true}, true
	}

	if !allowFuzzy {
		return MatchDescriptor{}, false
	}

	if strings.Contains(candidate, needle) {
		return MatchDescriptor{Tier: TierSubstring}, true
	}
	if strings.Contains(candidateLower, needleLower) {
		return MatchDescriptor{Tier: TierSubstringCI, CaseFold: true}, true
	}
	if isSubsequence(needleLower, candidateLower) {
		return MatchDescriptor{Tier: TierSubsequenceInsert, CaseFold: true}, true
	}
	return MatchDescriptor{}, false
}

// isSubsequence reports whether every rune of needle appears in candidate
// in order, with other runes allowed in between ("insert" tier: the
// candidate is needle with extra characters inserted).
func isSubsequence(needle, candidate string) bool {
	if needle == "" {
		return true
	}
	ni := 0
	needleRunes := []rune(needle)
	for _, r := range candidate {
		if r == needleRunes[ni] {
			ni++
			if ni == len(needleRunes) {
				return true
			}
		}
	}
	return false
}

// Suffix returns the portion of candidate after needle's length, used to
// build a suffix-only candidate when the match does not require full
// replacement.
func Suffix(needle, candidate string) string {
	if len(needle) > len(candidate) {
		return ""
	}
	return candidate[len(needle):]
}
