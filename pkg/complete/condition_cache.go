package complete

import "github.com/vially/fish-shell/pkg/shellenv"

// ConditionCache memoizes condition-string → bool for one request. It
// needs no lock: it lives exclusively on one driver instance.
type ConditionCache struct {
	autosuggest bool
	main        *shellenv.MainThreadCapability
	cache       map[string]bool
}

// NewConditionCache constructs a cache for one request. main is nil for
// autosuggest-mode requests: in that case Eval never invokes the condition
// evaluator, by construction.
func NewConditionCache(autosuggest bool, main *shellenv.MainThreadCapability) *ConditionCache {
	return &ConditionCache{autosuggest: autosuggest, main: main, cache: make(map[string]bool)}
}

// Eval returns whether condition holds:
//   - the empty string is always true, without evaluation or caching;
//   - in autosuggest mode every other condition is false, without
//     evaluation (autosuggestions never execute user code);
//   - otherwise the predicate is evaluated once via the main-thread
//     condition evaluator and the result is cached for this request.
func (c *ConditionCache) Eval(condition string) bool {
	if condition == "" {
		return true
	}
	if c.autosuggest || c.main == nil || c.main.Conditions == nil {
		return false
	}
	if v, ok := c.cache[condition]; ok {
		return v
	}
	ok, err := c.main.Conditions.EvalCondition(condition)
	if err != nil {
		ok = false
	}
	c.cache[condition] = ok
	return ok
}
