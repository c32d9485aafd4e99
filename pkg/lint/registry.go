package lint

import (
	"sort"
	"sync"
)

// registry stores all registered rules keyed by ID.
var registry = struct {
	mu    sync.RWMutex
	rules map[string]RuleDef
}{rules: make(map[string]RuleDef)}

// Register adds a rule to the registry. Rules register themselves in init
// functions; a duplicate ID overwrites the earlier definition.
func Register(def RuleDef) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules[def.ID] = def
}

// All returns all registered rules sorted by ID.
func All() []RuleDef {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	rules := make([]RuleDef, 0, len(registry.rules))
	for _, def := range registry.rules {
		rules = append(rules, def)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// Get returns a rule by its ID.
func Get(id string) (RuleDef, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	def, ok := registry.rules[id]
	return def, ok
}

// Count returns the number of registered rules.
func Count() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.rules)
}

// AllInfo returns metadata for all registered rules sorted by ID.
func AllInfo() []RuleInfo {
	rules := All()
	infos := make([]RuleInfo, len(rules))
	for i, def := range rules {
		infos[i] = GetRuleInfo(def)
	}
	return infos
}

// Clear removes all rules from the registry. Used for testing.
func Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules = make(map[string]RuleDef)
}
