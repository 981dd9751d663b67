// Package shellenv defines the narrow collaborator contracts the completion
// engine consumes but does not implement itself: environment variable
// access, PATH/function/builtin enumeration, the passwd database, and the
// opt-in subshell condition evaluator. Each is a minimal interface so a host
// shell can wire in its real implementation while tests substitute fakes.
package shellenv

import "strings"

// Snapshot is an immutable view of the environment the driver consults for
// one request: environment variables are read through a snapshot taken once
// up front rather than live, so a request's view of the environment can't
// shift mid-completion.
type Snapshot struct {
	vars map[string]string
}

// NewSnapshot copies vars into a Snapshot. Later mutation of vars does not
// affect the returned value.
func NewSnapshot(vars map[string]string) Snapshot {
	cp := make(map[string]string, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return Snapshot{vars: cp}
}

// Get returns the value of name and whether it was set.
func (s Snapshot) Get(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// EachName calls f with the name of every variable in the snapshot. Order is
// unspecified.
func (s Snapshot) EachName(f func(name string)) {
	for k := range s.vars {
		f(k)
	}
}

// CDPATHOrDefault returns the snapshot's CDPATH entries, split on the OS
// path-list separator, or ["."] if CDPATH is unset or empty.
func (s Snapshot) CDPATHOrDefault(listSep string) []string {
	v, ok := s.Get("CDPATH")
	if !ok || v == "" {
		return []string{"."}
	}
	return strings.Split(v, listSep)
}

// PureEvaler purely (side-effect-free) evaluates the small fragments of
// shell syntax the driver needs to turn into literal strings without
// running a subshell: compound words such as "$HOME/bin" or a partial
// compound while the user is still typing it.
type PureEvaler interface {
	// PurelyEvalCompound evaluates a fully-formed compound word (no
	// trailing partial primary) to the list of strings it expands to.
	PurelyEvalCompound(text string) ([]string, error)
	// PurelyEvalPartialCompound evaluates a compound word that may be
	// missing its last segment (the user is still typing it), returning
	// the values it's known to expand to so far.
	PurelyEvalPartialCompound(text string) ([]string, error)
}

// UserLister enumerates the passwd database for the `~user` generator.
// Implementations must honor a wall-clock budget: Each may stop early and
// return whatever it managed to enumerate.
type UserLister interface {
	// Each calls f with each known username, until f returns false or the
	// lister's own time budget is exhausted.
	Each(f func(name string) (more bool))
	// Desc returns a short gloss for name, e.g. its home directory ("Home
	// for root"), or "" if none is known. Called only for names that are
	// actually offered as a candidate, never during the Each scan itself.
	Desc(name string) string
}

// BuiltinSet is a small interface for consulting the shell's builtin
// command table: the set of names and a one-line description per name.
type BuiltinSet interface {
	GetNames() []string
	GetDesc(name string) string
}

// ExternalScanner enumerates executables found on PATH, the first step of
// the command generator.
type ExternalScanner interface {
	// EachExternal calls f with the name of every executable found by
	// scanning PATH, until f returns false.
	EachExternal(f func(name string) (more bool))
}

// FunctionSet enumerates user-defined shell functions, consulted by the
// command generator after the PATH scan.
type FunctionSet interface {
	GetNames() []string
}

// Loader is the per-command on-demand completion script loader. Load must
// be idempotent and safe to call repeatedly for the same cmd. The driver
// calls Load directly for each wrap-chain member on every main-mode request
// and does not serialize those calls, so an implementation serializes
// loading per command name itself.
type Loader interface {
	Load(cmd string) error
}

// ConditionEvaluator runs a condition string as a subshell predicate. It is
// reachable only through a MainThreadCapability, never directly, so that an
// autosuggest-mode driver cannot accidentally hold one: the type system,
// not a runtime check, forbids evaluating a condition off the main thread.
type ConditionEvaluator interface {
	EvalCondition(condition string) (bool, error)
}

// ArgsExpander runs the restricted shell parser used by the args generator
// (complete.GenerateArgs). Variable suggestions from the grammar set are not
// expanded through it. Mode controls whether side-effecting evaluation is
// disallowed.
type ArgsExpander interface {
	ExpandArgs(command string, mode ArgsMode) ([]string, error)
}

// ArgsMode selects how permissive ArgsExpander.ExpandArgs is.
type ArgsMode int

const (
	// General allows full, side-effecting evaluation. Only available on
	// the main thread.
	General ArgsMode = iota
	// CompletionsOnly restricts evaluation to what's safe on an
	// autosuggest worker thread.
	CompletionsOnly
)

// MainThreadCapability is held only by drivers running on the interactive
// main thread. Its presence (rather than a runtime "am I autosuggesting"
// check) is what makes the condition evaluator and the user lister
// reachable at all: an autosuggest-mode driver
// is constructed with a nil *MainThreadCapability, so these code paths
// (including the passwd-database lookup behind the user lister) are
// unreachable by construction, not by convention.
type MainThreadCapability struct {
	Conditions ConditionEvaluator
	Users      UserLister
}
