package server

import (
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/modules/core"
	corepersistence "github.com/iota-uz/sitecms/modules/core/infrastructure/persistence"
	"github.com/iota-uz/sitecms/modules/website"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/blob"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/routing"
	pkgserver "github.com/iota-uz/sitecms/pkg/server"
)

func buildServer(t *testing.T) *pkgserver.HTTPServer {
	t.Helper()

	conf := configuration.Use()
	logger := conf.Logger()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	require.NoError(t, core.NewModule(&core.ModuleOptions{
		Users:    corepersistence.NewInmemUserRepository(),
		Sessions: corepersistence.NewInmemSessionRepository(),
		Blobs:    blob.NewMemoryStore(),
	}).Register(app))
	stores := persistence.NewMemoryStores()
	require.NoError(t, website.NewModule(&website.ModuleOptions{
		Stores:     &stores,
		Pages:      persistence.NewInmemPageRepository(),
		Inquiries:  persistence.NewInmemInquiryRepository(),
		Registerer: prometheus.NewRegistry(),
	}).Register(app))

	srv, err := Default(&DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Entrypoint:    "server",
	})
	require.NoError(t, err)
	return srv
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()

	seen := map[string]struct{}{}
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if tmpl, err := route.GetPathTemplate(); err == nil && strings.TrimSpace(tmpl) != "" {
			seen[tmpl] = struct{}{}
		}
		return nil
	})
	require.NoError(t, err)

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func TestServerRoutes_AllAllowlisted(t *testing.T) {
	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	var offending []string
	for _, p := range collectRoutePaths(t, buildServer(t).Router()) {
		if _, ok := classifier.MatchAllowlist(p); !ok {
			offending = append(offending, p)
		}
	}
	assert.Empty(t, offending, "routes missing from config/routing/allowlist.yaml")
}

func TestServerRoutes_Classes(t *testing.T) {
	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	paths := collectRoutePaths(t, buildServer(t).Router())
	require.NotEmpty(t, paths)

	for _, p := range paths {
		class, _ := classifier.MatchAllowlist(p)
		switch {
		case routing.HasPathPrefixOnBoundary(p, "/api/admin"):
			assert.Equal(t, routing.RouteClassInternalAPI, class, p)
		case routing.HasPathPrefixOnBoundary(p, "/api/public"):
			assert.Equal(t, routing.RouteClassPublicAPI, class, p)
		}
	}
	assert.Contains(t, paths, "/api/admin/jobs/reorder")
	assert.Contains(t, paths, "/api/public/industries/{industryId:[0-9a-fA-F-]{36}}/solutions")
}
