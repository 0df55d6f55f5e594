// Package normalize canonicalises user and employee display names so they
// can be joined across data sources, and filters out internal accounts.
package normalize

import "strings"

// Name trims, collapses internal whitespace runs to one space and
// lowercases. Empty input normalises to the empty string.
func Name(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// RuleKind distinguishes exclusion rule semantics.
type RuleKind string

const (
	// KindExact matches the raw display name verbatim.
	KindExact RuleKind = "exact"
	// KindSubstring matches anywhere inside the normalised name.
	KindSubstring RuleKind = "substring"
)

// Rule is one injectable exclusion entry.
type Rule struct {
	Kind  RuleKind
	Value string
}

// Exclusions hides internal/test accounts from aggregates. Substring rules
// are applied to normalised names, exact rules to raw names, matching how
// the upstream reports were originally filtered.
type Exclusions struct {
	exact      map[string]struct{}
	substrings []string
}

// NewExclusions compiles a rule list.
func NewExclusions(rules []Rule) *Exclusions {
	e := &Exclusions{exact: make(map[string]struct{})}
	for _, rule := range rules {
		switch rule.Kind {
		case KindExact:
			e.exact[rule.Value] = struct{}{}
		case KindSubstring:
			e.substrings = append(e.substrings, strings.ToLower(rule.Value))
		}
	}
	return e
}

// NewExclusionLists builds an Exclusions from plain name and substring lists.
func NewExclusionLists(exactNames, substrings []string) *Exclusions {
	rules := make([]Rule, 0, len(exactNames)+len(substrings))
	for _, name := range exactNames {
		rules = append(rules, Rule{Kind: KindExact, Value: name})
	}
	for _, sub := range substrings {
		rules = append(rules, Rule{Kind: KindSubstring, Value: sub})
	}
	return NewExclusions(rules)
}

// MatchesSubstring reports whether any substring rule appears in the
// normalised name.
func (e *Exclusions) MatchesSubstring(name string) bool {
	if e == nil {
		return false
	}
	normalized := Name(name)
	if normalized == "" {
		return false
	}
	for _, sub := range e.substrings {
		if strings.Contains(normalized, sub) {
			return true
		}
	}
	return false
}

// MatchesExact reports whether the raw name is excluded verbatim.
func (e *Exclusions) MatchesExact(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.exact[name]
	return ok
}
