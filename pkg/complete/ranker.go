package complete

import "sort"

// Rank filters candidates down to those at the best tier present (an EXACT
// best widened to admit PREFIX as well), deduplicates by text, and sorts by tier then natural text order,
// returning the final, ordered candidate list. It mutates neither its
// argument nor anything owned by the caller; it returns a new slice.
func Rank(candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	threshold := bestTier(candidates)
	if threshold == TierExact {
		// "tab on a file that exactly matches still shows nearby siblings"
		threshold = TierPrefix
	}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Match.Tier <= threshold {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return naturalLess(kept[i].Text, kept[j].Text)
	})
	kept = dedupAdjacentByText(kept)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Match.Tier < kept[j].Match.Tier
	})
	return kept
}

func bestTier(candidates []Candidate) MatchTier {
	best := TierNone
	for _, c := range candidates {
		if c.Match.Tier < best {
			best = c.Match.Tier
		}
	}
	return best
}

func dedupAdjacentByText(candidates []Candidate) []Candidate {
	out := candidates[:0]
	for i, c := range candidates {
		if i > 0 && c.Text == candidates[i-1].Text {
			continue
		}
		out = append(out, c)
	}
	return out
}

// naturalLess compares a and b the way file listings sort "file2" before
// "file10": runs of digits compare by numeric value, everything else
// compares byte-by-byte, case-insensitively, with case used only as a final
// tiebreak.
func naturalLess(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		ca, cb := ar[i], br[j]
		if isDigitRune(ca) && isDigitRune(cb) {
			na, ei := scanNumber(ar, i)
			nb, ej := scanNumber(br, j)
			if na != nb {
				return na < nb
			}
			i, j = ei, ej
			continue
		}
		la, lb := toLowerRune(ca), toLowerRune(cb)
		if la != lb {
			return la < lb
		}
		i++
		j++
	}
	if len(ar) != len(br) {
		return len(ar) < len(br)
	}
	// Case-insensitive equal: fall back to exact byte order so the result
	// is deterministic rather than arbitrary-stable.
	return a < b
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// scanNumber reads the run of digits starting at i and returns its value
// (saturating, not overflow-checked beyond a generous cap since completion
// candidates are never astronomically long numbers) and the index just past
// it.
func scanNumber(rs []rune, i int) (int64, int) {
	var n int64
	for i < len(rs) && isDigitRune(rs[i]) {
		n = n*10 + int64(rs[i]-'0')
		if n > 1<<40 {
			n = 1 << 40
		}
		i++
	}
	return n, i
}
