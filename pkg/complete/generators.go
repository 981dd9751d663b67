package complete

import (
	"strings"
	"time"

	"github.com/vially/fish-shell/pkg/shellenv"
)

// userGeneratorBudget is the wall-clock budget the user generator gets
// before it must abort and return what it has.
const userGeneratorBudget = 200 * time.Millisecond

// GenerateVariables implements the variable ($name) generator: scans token
// left-to-right tracking quote state, finds the last unescaped "$" followed
// by identifier characters, and fuzzy-matches the remainder against names.
// values, if non-nil, supplies the description text for a match (skipped in
// autosuggest mode, where descriptions are not computed).
func GenerateVariables(token string, names []string, values map[string]string, allowFuzzy, autosuggest bool) []Candidate {
	dollar, ident, ok := lastUnescapedDollarIdent(token)
	if !ok {
		return nil
	}

	var out []Candidate
	for _, name := range names {
		m, ok := Match(ident, name, allowFuzzy)
		if !ok {
			continue
		}
		desc := ""
		if !autosuggest {
			if v, ok := values[name]; ok {
				desc = v
			}
		}
		out = append(out, buildNameCandidate(token[:dollar+1], ident, name, m, desc, 0))
	}
	return out
}

// lastUnescapedDollarIdent scans token tracking a 3-state quote mode
// (unquoted/single/double; backslash skips one char) and returns the index
// of the last unescaped "$" whose suffix so far is all identifier
// characters, plus that suffix.
func lastUnescapedDollarIdent(token string) (dollarIdx int, ident string, ok bool) {
	const (
		unquoted = iota
		single
		double
	)
	state := unquoted
	dollarIdx = -1
	runes := []rune(token)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && state != single:
			i++
		case state == unquoted && r == '\'':
			state = single
		case state == single && r == '\'':
			state = unquoted
		case state == unquoted && r == '"':
			state = double
		case state == double && r == '"':
			state = unquoted
		case r == '$' && state != single:
			dollarIdx = i
		}
	}
	if dollarIdx == -1 {
		return 0, "", false
	}
	var b strings.Builder
	for _, r := range runes[dollarIdx+1:] {
		if !isIdentRune(r) {
			return 0, "", false
		}
		b.WriteRune(r)
	}
	return dollarIdx, b.String(), true
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// GenerateUsers implements the user (~user) generator: it expands a token
// starting with "~" against the passwd database. caps is nil on an
// autosuggest driver (no MainThreadCapability), in which case generation is
// skipped entirely — the passwd lookup never runs off the main thread.
func GenerateUsers(token string, caps *shellenv.MainThreadCapability) []Candidate {
	if caps == nil || caps.Users == nil {
		return nil
	}
	if !strings.HasPrefix(token, "~") || strings.ContainsRune(token, '/') {
		return nil
	}
	needle := token[1:]

	var out []Candidate
	deadline := time.Now().Add(userGeneratorBudget)
	caps.Users.Each(func(name string) bool {
		if time.Now().After(deadline) {
			return false
		}
		switch {
		case strings.HasPrefix(name, needle):
			out = append(out, NewCandidate(name[len(needle):], caps.Users.Desc(name), MatchDescriptor{Tier: TierPrefix}, NoSpace))
		case strings.HasPrefix(strings.ToLower(name), strings.ToLower(needle)):
			out = append(out, NewCandidate("~"+name, caps.Users.Desc(name), MatchDescriptor{Tier: TierPrefixCI, CaseFold: true}, ReplacesToken|DontEscape|NoSpace))
		}
		return true
	})
	return out
}

// CommandGeneratorInputs bundles the collaborators the command generator
// consults. Any field may be nil/empty to skip that step.
type CommandGeneratorInputs struct {
	External shellenv.ExternalScanner
	Funcs    shellenv.FunctionSet
	Builtins shellenv.BuiltinSet
	Describe func(cmd string) string // "__fish_describe_command" equivalent, may be nil
}

// GenerateCommands implements the command generator for a plain (no "/", no
// leading "~") token: externals on PATH, then user-defined functions, then
// builtins, with a command-description lookup backfilled last.
func GenerateCommands(token string, in CommandGeneratorInputs, allowFuzzy bool) []Candidate {
	var out []Candidate

	if in.External != nil {
		in.External.EachExternal(func(name string) bool {
			if m, ok := Match(token, name, allowFuzzy); ok {
				out = append(out, buildNameCandidate("", token, name, m, "", 0))
			}
			return true
		})
	}

	if in.Funcs != nil {
		for _, name := range in.Funcs.GetNames() {
			if strings.HasPrefix(name, "_") && !strings.HasPrefix(token, "_") {
				continue
			}
			if m, ok := Match(token, name, allowFuzzy); ok {
				out = append(out, buildNameCandidate("", token, name, m, "", 0))
			}
		}
	}

	if in.Builtins != nil {
		for _, name := range in.Builtins.GetNames() {
			if m, ok := Match(token, name, allowFuzzy); ok {
				out = append(out, buildNameCandidate("", token, name, m, in.Builtins.GetDesc(name), 0))
			}
		}
	}

	if in.Describe != nil && len(token) >= 2 && !strings.ContainsAny(token, "*?[") {
		allHaveSlash := len(out) > 0
		for _, c := range out {
			if !strings.HasSuffix(c.Text, "/") {
				allHaveSlash = false
				break
			}
		}
		if !allHaveSlash {
			for i := range out {
				if out[i].Description == "" {
					out[i].Description = in.Describe(token + out[i].Text)
				}
			}
		}
	}

	return out
}

// GenerateArgs implements the args generator: expand an "arguments" command
// through expander, then match the user's partial against the produced
// tokens with Match. Wildcards in the partial are not expanded; they are
// matched as literal characters.
func GenerateArgs(command, description, partial string, expander shellenv.ArgsExpander, mode shellenv.ArgsMode, allowFuzzy bool) []Candidate {
	if expander == nil || command == "" {
		return nil
	}
	tokens, err := expander.ExpandArgs(command, mode)
	if err != nil {
		return nil
	}
	var out []Candidate
	for _, tok := range tokens {
		if m, ok := Match(partial, tok, allowFuzzy); ok {
			out = append(out, buildNameCandidate("", partial, tok, m, description, 0))
		}
	}
	return out
}

// buildNameCandidate turns a Match result against a full name into a
// Candidate: a suffix-only candidate for EXACT/PREFIX, a full-replacement
// candidate (prefixed with keep, e.g. the "$" the variable generator found)
// for every other tier.
func buildNameCandidate(keep, needle, name string, m MatchDescriptor, desc string, extraFlags CandidateFlags) Candidate {
	flags := extraFlags
	var text string
	if RequiresFullReplacement(m.Tier) {
		flags |= ReplacesToken
		text = keep + name
	} else {
		text = Suffix(needle, name)
	}
	return NewCandidate(text, desc, m, flags|AutoSpace)
}
