package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowlist_LoadsAndHasCriticalRules(t *testing.T) {
	serverRules, err := LoadAllowlist("", "server")
	require.NoError(t, err)

	cliRules, err := LoadAllowlist("", "cli")
	require.NoError(t, err)
	require.NotEmpty(t, cliRules)

	requireAllowlistRule(t, serverRules, "/api/admin", RouteClassInternalAPI)
	requireAllowlistRule(t, serverRules, "/api/public", RouteClassPublicAPI)
	requireAllowlistRule(t, serverRules, "/api/auth", RouteClassAuthn)
	requireAllowlistRule(t, serverRules, "/health", RouteClassOps)
	requireAllowlistRule(t, serverRules, "/debug/prometheus", RouteClassOps)
}

func TestParseAllowlist_Rejects(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"version":    "version: 2\nentrypoints: {server: []}",
		"entrypoint": "version: 1\nentrypoints: {cli: []}",
		"prefix":     "version: 1\nentrypoints:\n  server:\n    - {prefix: api, class: ops}",
		"class":      "version: 1\nentrypoints:\n  server:\n    - {prefix: /x, class: ui}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAllowlist([]byte(doc), "server")
			require.Error(t, err)
		})
	}
}

func TestClassifier_ClassifyPath(t *testing.T) {
	t.Parallel()
	c := NewClassifier([]AllowlistRule{
		{Prefix: "/api/admin", Class: RouteClassInternalAPI},
		{Prefix: "/api/public", Class: RouteClassPublicAPI},
		{Prefix: "/health", Class: RouteClassOps},
	})

	assert.Equal(t, RouteClassInternalAPI, c.ClassifyPath("/api/admin/jobs/reorder"))
	assert.Equal(t, RouteClassPublicAPI, c.ClassifyPath("/api/public/locations"))
	assert.Equal(t, RouteClassOps, c.ClassifyPath("/health"))
	assert.Equal(t, RouteClassUnknown, c.ClassifyPath("/healthz"))
	assert.Equal(t, RouteClassInternalAPI, c.ClassifyPath("/api/other"))
	assert.True(t, RouteClassAuthn.IsAPI())
	assert.False(t, RouteClassOps.IsAPI())
}

func requireAllowlistRule(t *testing.T, rules []AllowlistRule, prefix string, class RouteClass) {
	t.Helper()

	for _, rule := range rules {
		if rule.Prefix == prefix && rule.Class == class {
			return
		}
	}
	t.Fatalf("allowlist missing rule: %q -> %q", prefix, class)
}
