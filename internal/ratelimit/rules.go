package ratelimit

import (
	"strings"
	"time"
)

// Rule binds a route path prefix to a request budget.
type Rule struct {
	Pattern string
	Limit   int
	Window  time.Duration
}

// Rules is an ordered per-route budget table with a default fallback for
// unmatched paths. The first matching rule wins.
type Rules struct {
	rules    []Rule
	fallback Rule
}

// NewRules creates a rule table. fallback applies to any path no rule matches.
func NewRules(rules []Rule, fallback Rule) *Rules {
	return &Rules{rules: rules, fallback: fallback}
}

// Match returns the budget rule for the given request path.
func (r *Rules) Match(path string) Rule {
	for _, rule := range r.rules {
		if strings.HasPrefix(path, rule.Pattern) {
			return rule
		}
	}
	return r.fallback
}
