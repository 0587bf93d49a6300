package policy

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Rule pairs a glob pattern with the Strategy it selects. Rules are
// tried in declaration order; the first match wins.
type Rule struct {
	Pattern string
	Strategy Strategy

	compiled glob.Glob
}

// Matcher is an ordered glob rule table implementing the
// Workspace.strategy(path) policy hook (spec.md section 4.E): first
// match wins, and an explicit default covers paths no rule names.
type Matcher struct {
	rules   []Rule
	fallback Strategy
}

// NewMatcher compiles rules in order, falling back to fallback when
// nothing matches. The default is a constructor parameter on purpose -
// callers must be able to configure it, never hardcode it.
func NewMatcher(fallback Strategy, rules ...Rule) (*Matcher, error) {
	compiled := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		g, err := glob.Compile(rule.Pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", rule.Pattern, err)
		}
		rule.compiled = g
		compiled = append(compiled, rule)
	}

	return &Matcher{rules: compiled, fallback: fallback}, nil
}

// Strategy returns the Strategy assigned to relPath: the first rule
// whose glob matches, or the configured fallback.
func (m *Matcher) Strategy(relPath string) Strategy {
	for _, rule := range m.rules {
		if rule.compiled.Match(relPath) {
			return rule.Strategy
		}
	}
	return m.fallback
}

// Rules exposes the ordered rule table, e.g. for "policy show".
func (m *Matcher) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

// Fallback returns the default Strategy used when no rule matches.
func (m *Matcher) Fallback() Strategy {
	return m.fallback
}
