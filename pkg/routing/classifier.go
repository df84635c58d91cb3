package routing

import (
	"sort"
	"strings"
)

type Classifier struct {
	rules []AllowlistRule
}

// NewClassifier matches longest prefixes first.
func NewClassifier(rules []AllowlistRule) *Classifier {
	copied := make([]AllowlistRule, 0, len(rules))
	for _, rule := range rules {
		rule.Prefix = strings.TrimSpace(rule.Prefix)
		if rule.Prefix == "" {
			continue
		}
		copied = append(copied, rule)
	}

	sort.SliceStable(copied, func(i, j int) bool {
		return len(copied[i].Prefix) > len(copied[j].Prefix)
	})
	return &Classifier{rules: copied}
}

func (c *Classifier) MatchAllowlist(path string) (RouteClass, bool) {
	for _, rule := range c.rules {
		if HasPathPrefixOnBoundary(path, rule.Prefix) {
			return rule.Class, true
		}
	}
	return "", false
}

// ClassifyPath falls back to treating any /api path as internal when the
// allowlist has no rule for it.
func (c *Classifier) ClassifyPath(path string) RouteClass {
	if class, ok := c.MatchAllowlist(path); ok {
		return class
	}
	if HasPathPrefixOnBoundary(path, "/api/public") {
		return RouteClassPublicAPI
	}
	if HasPathPrefixOnBoundary(path, "/api") {
		return RouteClassInternalAPI
	}
	return RouteClassUnknown
}

// IsAPI reports whether class answers with JSON.
func (c RouteClass) IsAPI() bool {
	return c == RouteClassInternalAPI || c == RouteClassPublicAPI || c == RouteClassAuthn
}

func HasPathPrefixOnBoundary(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	return path[len(prefix)] == '/'
}
