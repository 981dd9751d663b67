// Package registry implements the per-command grammar registry: storing,
// composing, and querying docopt-style usage descriptions and legacy
// option lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vially/fish-shell/pkg/errutil"
)

// ConditionSyntaxChecker is the external syntax-only checker condition
// strings are sent to during registration. It never executes anything; it
// only validates that a condition string is syntactically well-formed
// shell syntax.
type ConditionSyntaxChecker interface {
	CheckSyntax(condition string) error
}

// optionRecord pairs an Option with the monotonic id it was registered
// under, so print_registry can interleave options and docopt registrations
// in a single insertion-order stream.
type optionRecord struct {
	id uint64
	Option
}

type commandEntry struct {
	registrations []*Registration
	options       []optionRecord
	authoritative bool

	legacyCache      *legacyParser
	legacyCacheEpoch uint64
	epoch            uint64
}

// Registry is the process-wide grammar registry. All access goes through a
// single lock, held only for in-memory bookkeeping; no I/O ever happens
// while it is held.
type Registry struct {
	mu       sync.Mutex
	commands map[string]*commandEntry
	nextID   uint64
	checker  ConditionSyntaxChecker
}

// New returns an empty registry. checker may be nil, in which case
// condition strings are never rejected for syntax.
func New(checker ConditionSyntaxChecker) *Registry {
	return &Registry{commands: make(map[string]*commandEntry), checker: checker}
}

func (r *Registry) entry(cmd string) *commandEntry {
	e, ok := r.commands[cmd]
	if !ok {
		e = &commandEntry{}
		r.commands[cmd] = e
	}
	return e
}

// RegisterUsage parses usage via the docopt grammar compiler and, on
// success, installs it for cmd. If cmd is empty it is
// inferred from the grammar: exactly one distinct command name in the usage
// text is accepted, zero or more than one is an error. A prior registration
// whose usage text matches exactly is replaced.
func (r *Registry) RegisterUsage(cmd, condition, usage, description string) error {
	grammar, err := compileGrammar(usage)
	if err != nil {
		return err
	}

	if cmd == "" {
		switch len(grammar.commands) {
		case 0:
			return fmt.Errorf("register_usage: no command name found in usage text")
		case 1:
			cmd = grammar.commands[0]
		default:
			return fmt.Errorf("register_usage: usage text names multiple commands %v, cmd must be given explicitly", grammar.commands)
		}
	}

	if r.checker != nil && condition != "" {
		if err := r.checker.CheckSyntax(condition); err != nil {
			return errutil.Multi(fmt.Errorf("register_usage: invalid condition %q: %w", condition, err))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entry(cmd)
	kept := e.registrations[:0]
	for _, existing := range e.registrations {
		if existing.Usage != usage {
			kept = append(kept, existing)
		}
	}
	r.nextID++
	reg := &Registration{Usage: usage, Description: description, Condition: condition, grammar: grammar, id: r.nextID}
	e.registrations = append(kept, reg)
	return nil
}

// AddOption appends opt to cmd's legacy option list (register_direct_options)
// and invalidates the cached legacy parser.
func (r *Registry) AddOption(cmd string, opt Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entry(cmd)
	r.nextID++
	e.options = append(e.options, optionRecord{id: r.nextID, Option: opt})
	e.epoch++
}

// RemoveOption removes the first option matching spelling and form from
// cmd's legacy option list. Removing the last option deletes the command
// entry entirely if it also has no docopt registrations.
func (r *Registry) RemoveOption(cmd, spelling string, form OptionForm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.commands[cmd]
	if !ok {
		return
	}
	for i, o := range e.options {
		if o.Option.Spelling == spelling && o.Option.Form == form {
			e.options = append(e.options[:i:i], e.options[i+1:]...)
			e.epoch++
			break
		}
	}
	r.deleteIfEmpty(cmd, e)
}

// RemoveAll clears cmd's legacy option list.
func (r *Registry) RemoveAll(cmd string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.commands[cmd]
	if !ok {
		return
	}
	e.options = nil
	e.epoch++
	r.deleteIfEmpty(cmd, e)
}

func (r *Registry) deleteIfEmpty(cmd string, e *commandEntry) {
	if len(e.options) == 0 && len(e.registrations) == 0 {
		delete(r.commands, cmd)
	}
}

// SetAuthoritative marks whether cmd's legacy option list is a complete
// description of its options (affecting whether unknown flags are rejected
// by callers; the registry itself only records the flag).
func (r *Registry) SetAuthoritative(cmd string, authoritative bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(cmd).authoritative = authoritative
}

// IsAuthoritative reports the flag SetAuthoritative last set for cmd.
func (r *Registry) IsAuthoritative(cmd string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.commands[cmd]
	return ok && e.authoritative
}

// Get returns an immutable snapshot of cmd's grammar set. If cmd has a
// legacy option list, the legacy parser is built lazily and cached, keyed
// by a monotonically increasing epoch that AddOption/RemoveOption/
// RemoveAll bump.
func (r *Registry) Get(cmd string) GrammarSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.commands[cmd]
	if !ok {
		return GrammarSet{}
	}

	regs := make([]*Registration, len(e.registrations))
	copy(regs, e.registrations)

	var legacy *legacyParser
	if len(e.options) > 0 {
		if e.legacyCache == nil || e.legacyCacheEpoch != e.epoch {
			opts := make([]Option, len(e.options))
			for i, o := range e.options {
				opts[i] = o.Option
			}
			e.legacyCache = newLegacyParser(cmd, opts)
			e.legacyCacheEpoch = e.epoch
		}
		legacy = e.legacyCache
	}
	return GrammarSet{registrations: regs, legacy: legacy}
}

// Commands returns every command name with a non-empty grammar set, sorted.
func (r *Registry) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
