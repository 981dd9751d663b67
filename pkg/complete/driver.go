package complete

import (
	"strings"

	"github.com/vially/fish-shell/pkg/parse"
	"github.com/vially/fish-shell/pkg/registry"
	"github.com/vially/fish-shell/pkg/shellenv"
	"github.com/vially/fish-shell/pkg/wrapgraph"
)

// RequestFlags is a bitset of per-request switches.
type RequestFlags uint8

const (
	// Autosuggestion marks a background, side-effect-free request: no
	// subshells, no getpwent.
	Autosuggestion RequestFlags = 1 << iota
	Descriptions
	FuzzyMatch
)

// FileExpander is the external generic file/path expander phase 5 calls
// into; its implementation lives outside this package (the host shell's
// globbing/filesystem layer).
type FileExpander interface {
	ExpandFiles(token string, opts FileExpandOptions) ([]Candidate, error)
}

// FileExpandOptions mirrors the flags phase 5 derives for the file
// generator.
type FileExpandOptions struct {
	SpecialCD        bool // cd: directories only, no descriptions, honors CDPATH
	WantDescriptions bool
	Autosuggest      bool
	FuzzyMatch       bool
	DirectoriesOnly  bool // set together with SpecialCD for cd's arguments
}

// Deps bundles every collaborator a single Complete call needs. Main is
// nil for an autosuggest-mode request, per
// shellenv.MainThreadCapability's construction-time guarantee.
type Deps struct {
	Env          shellenv.Snapshot
	Registry     *registry.Registry
	Wraps        *wrapgraph.Graph
	Loader       shellenv.Loader
	Main         *shellenv.MainThreadCapability
	Commands     CommandGeneratorInputs
	Files        FileExpander
	ArgsExpander shellenv.ArgsExpander
	VarValues    map[string]string // variable descriptions, e.g. from the real env
}

// Result is the outcome of one completion request.
type Result struct {
	Candidates []Candidate
}

// Complete runs the five-phase completion pipeline: localise the cursor,
// try the unconditional ($var, ~user) expansions, parse the line
// tolerantly, classify the command/argument position and query the
// grammar chain, then run file/param expansion and rank everything.
func Complete(line string, cursor int, flags RequestFlags, deps Deps) (*Result, error) {
	autosuggest := flags&Autosuggestion != 0
	allowFuzzy := flags&FuzzyMatch != 0
	wantDesc := flags&Descriptions != 0

	currentToken := rawTokenBefore(line, cursor)

	// Phase 2: unconditional expansions short-circuit everything else.
	if cands := GenerateVariables(currentToken, namesFromSnapshot(deps.Env), deps.VarValues, allowFuzzy, autosuggest); len(cands) > 0 {
		return &Result{Candidates: Rank(cands)}, nil
	}
	if cands := GenerateUsers(currentToken, deps.Main); len(cands) > 0 {
		return &Result{Candidates: Rank(cands)}, nil
	}

	// Phase 3: tolerant parse, localised to the innermost command
	// substitution containing the cursor.
	root, _ := parse.Parse(parse.Source{Name: "[completion]", Code: line}, parse.Config{
		ContinueAfterError:  true,
		AcceptIncompleteTok: true,
		IncludeComments:     true,
	})
	chunk := root
	if root != nil {
		chunk = parse.InnermostChunk(root, cursor)
	}
	var path []parse.Node
	if chunk != nil {
		path = parse.FindPath(chunk, cursor)
	}
	stmt := parse.EnclosingStatement(path)

	if stmt == nil {
		cands, _ := expandFiles(deps, currentToken, FileExpandOptions{WantDescriptions: wantDesc, Autosuggest: autosuggest, FuzzyMatch: allowFuzzy})
		return &Result{Candidates: Rank(cands)}, nil
	}

	// Phase 4: command vs argument position.
	if stmt.Head != nil && nodeContainsOrTouches(stmt.Head, cursor) {
		cands := commandPositionCandidates(stmt, currentToken, deps, allowFuzzy)
		return &Result{Candidates: Rank(cands)}, nil
	}

	current, previous := currentAndPreviousArgument(stmt, cursor)
	_ = previous

	cands := argumentPositionCandidates(stmt, cursor, current, deps, autosuggest, allowFuzzy)
	return &Result{Candidates: Rank(cands)}, nil
}

// commandPositionCandidates implements phase 4's command-position branch:
// the decoration narrows which generators run.
func commandPositionCandidates(stmt *parse.Statement, token string, deps Deps, allowFuzzy bool) []Candidate {
	switch stmt.Decoration {
	case parse.Command:
		return GenerateCommands(token, CommandGeneratorInputs{External: deps.Commands.External}, allowFuzzy)
	case parse.Builtin:
		return GenerateCommands(token, CommandGeneratorInputs{Builtins: deps.Commands.Builtins}, allowFuzzy)
	default:
		return GenerateCommands(token, deps.Commands, allowFuzzy)
	}
}

// argumentPositionCandidates implements phase 4's argument branch: walk the
// wrap chain, query each member's grammar set, and fall through to file
// expansion.
func argumentPositionCandidates(stmt *parse.Statement, cursor int, current string, deps Deps, autosuggest, allowFuzzy bool) []Candidate {
	headName := headText(stmt)
	argv := buildArgv(stmt, cursor)

	var out []Candidate
	grammarProducedAny := false
	allSuppressed := true

	chain := []string{headName}
	if deps.Wraps != nil {
		chain = deps.Wraps.Chain(headName)
	}

	if deps.Registry == nil {
		chain = nil
	}
	conditions := NewConditionCache(autosuggest, deps.Main)
	for _, cmd := range chain {
		if !autosuggest && deps.Loader != nil {
			deps.Loader.Load(cmd)
		}
		gs := deps.Registry.Get(cmd)
		suggestions := gs.SuggestNextArgument(argv)
		suggestions = filterByCondition(suggestions, conditions)
		if len(suggestions) == 0 {
			continue
		}
		grammarProducedAny = true
		memberSuppressed := true

		for _, s := range suggestions {
			if strings.HasPrefix(s.Token, "-") && !strings.HasPrefix(current, "-") {
				continue
			}
			if strings.HasPrefix(s.Token, "<") {
				// Variable suggestion: per-term argument commands aren't
				// exposed through the docopt grammar (only legacy
				// Option.ArgumentCommand carries one), so this contributes
				// no candidates of its own; it only signals whether files
				// should stay enabled below.
				if s.Tag&registry.AllowFiles != 0 {
					memberSuppressed = false
				}
				continue
			}
			memberSuppressed = false
			if current == "" {
				out = append(out, NewCandidate(s.Token, s.Description, MatchDescriptor{Tier: TierPrefix}, AutoSpace))
				continue
			}
			if strings.HasPrefix(s.Token, "-") {
				// Option spellings are a closed set matched whole, never by
				// literal suffix (the dash count itself can differ from what
				// the user typed), so a match always replaces the token.
				m, ok := Match(current, s.Token, allowFuzzy)
				if !ok {
					continue
				}
				out = append(out, NewCandidate(s.Token, s.Description, m, ReplacesToken))
				continue
			}
			m, ok := Match(current, s.Token, allowFuzzy)
			if !ok {
				continue
			}
			out = append(out, buildNameCandidate("", current, s.Token, m, s.Description, 0))
		}
		if !memberSuppressed {
			allSuppressed = false
		}
	}

	doFiles := true
	specialCD := headName == "cd"
	if grammarProducedAny && allSuppressed {
		doFiles = false
	}

	if doFiles {
		fileCands, _ := expandFilesWithSeparator(deps, current, FileExpandOptions{
			SpecialCD:       specialCD,
			DirectoriesOnly: specialCD,
			Autosuggest:     autosuggest,
			FuzzyMatch:      allowFuzzy,
		})
		out = append(out, fileCands...)
	}

	return out
}

// expandFilesWithSeparator implements phase 5's "=" / ":" separator repair:
// find the last "=" or ":" in token. With
// no separator, just expand the whole token. With one, always expand the
// post-separator suffix (repairing any REPLACES_TOKEN candidate by
// re-prepending the prefix, so e.g. "--opt=fi" yields "foo --opt=file1");
// additionally expand the whole token too when it does not start with "-"
// (an option spelling like "--opt=fi" is never itself a valid path).
func expandFilesWithSeparator(deps Deps, token string, opts FileExpandOptions) ([]Candidate, error) {
	if deps.Files == nil {
		return nil, nil
	}
	sep := lastByteOf(token, '=', ':')
	if sep == -1 {
		return expandFiles(deps, token, opts)
	}
	prefix, suffix := token[:sep+1], token[sep+1:]

	var whole []Candidate
	if !strings.HasPrefix(token, "-") {
		w, err := deps.Files.ExpandFiles(token, opts)
		if err == nil {
			whole = w
		}
	}
	part, err := deps.Files.ExpandFiles(suffix, opts)
	if err != nil {
		part = nil
	}
	for i, c := range part {
		if c.Flags&ReplacesToken != 0 {
			part[i].Text = prefix + c.Text
		}
	}
	return append(whole, part...), nil
}

// filterByCondition drops suggestions whose condition evaluates false, so
// a registration gated by a false condition contributes neither
// candidates nor a "this member suppressed files" signal: it is as if
// that registration were not installed for this request.
func filterByCondition(suggestions []registry.Suggestion, conditions *ConditionCache) []registry.Suggestion {
	kept := suggestions[:0]
	for _, s := range suggestions {
		if conditions.Eval(s.Condition) {
			kept = append(kept, s)
		}
	}
	return kept
}

func lastByteOf(s string, targets ...byte) int {
	idx := -1
	for i := 0; i < len(s); i++ {
		for _, t := range targets {
			if s[i] == t {
				idx = i
			}
		}
	}
	return idx
}

func expandFiles(deps Deps, token string, opts FileExpandOptions) ([]Candidate, error) {
	if deps.Files == nil {
		return nil, nil
	}
	return deps.Files.ExpandFiles(token, opts)
}

func headText(stmt *parse.Statement) string {
	if stmt.Head == nil {
		return ""
	}
	return stmt.Head.SourceText()
}

// buildArgv assembles argv for suggest_next_argument: the head and every
// completed argument. The partial argument the cursor sits inside, if any,
// is left out, so it is matched fuzzily against the suggestions afterwards
// rather than treated as a finished token.
func buildArgv(stmt *parse.Statement, cursor int) []string {
	argv := []string{headText(stmt)}
	for _, a := range stmt.Args {
		r := a.Range()
		if cursor > r.From && cursor <= r.To {
			continue
		}
		argv = append(argv, a.SourceText())
	}
	return argv
}

// currentAndPreviousArgument computes (current_argument, previous_argument)
// for the statement's argument list relative to cursor.
func currentAndPreviousArgument(stmt *parse.Statement, cursor int) (current, previous string) {
	for i, a := range stmt.Args {
		r := a.Range()
		if cursor > r.From && cursor <= r.To {
			current = a.SourceText()
			if i > 0 {
				previous = stmt.Args[i-1].SourceText()
			} else if stmt.Head != nil {
				previous = stmt.Head.SourceText()
			}
			return current, previous
		}
	}
	if len(stmt.Args) > 0 {
		previous = stmt.Args[len(stmt.Args)-1].SourceText()
	} else if stmt.Head != nil {
		previous = stmt.Head.SourceText()
	}
	return "", previous
}

func nodeContainsOrTouches(n parse.Node, pos int) bool {
	r := n.Range()
	return pos >= r.From && pos <= r.To
}

// rawTokenBefore returns the run of non-whitespace characters ending at
// cursor, used for the phase-2 unconditional expansions which work on raw
// text rather than a parsed node.
func rawTokenBefore(line string, cursor int) string {
	if cursor > len(line) {
		cursor = len(line)
	}
	start := cursor
	for start > 0 && !isWordBreakByte(line[start-1]) {
		start--
	}
	return line[start:cursor]
}

func isWordBreakByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', ';', '|', '&':
		return true
	}
	return false
}

func namesFromSnapshot(env shellenv.Snapshot) []string {
	var names []string
	env.EachName(func(name string) { names = append(names, name) })
	return names
}
