package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/routing"
)

const opsTokenHeader = "X-Ops-Token"

// opsGuard hides the health probe and the metrics endpoint in production.
// A request passes when it comes from an allowed CIDR, carries the ops token
// or basic credentials, or belongs to a signed-in editor.
type opsGuard struct {
	conf       *configuration.Configuration
	classifier *routing.Classifier
	paths      []string
	cidrs      []netip.Prefix
}

// OpsGuard guards the ops class of the entrypoint's allowlist together with
// /health and the configured metrics path. The last two stay guarded when the
// allowlist cannot be loaded or does not list them.
func OpsGuard(conf *configuration.Configuration, entrypoint string) mux.MiddlewareFunc {
	if conf == nil {
		conf = configuration.Use()
	}
	rules, err := routing.LoadAllowlist("", entrypoint)
	if err != nil {
		conf.Logger().WithError(err).WithField("entrypoint", entrypoint).
			Warn("ops guard: allowlist unavailable, guarding built-in ops paths only")
		rules = nil
	}
	return newOpsGuard(conf, routing.NewClassifier(rules)).middleware
}

func newOpsGuard(conf *configuration.Configuration, classifier *routing.Classifier) *opsGuard {
	paths := []string{"/health"}
	if p := strings.TrimSpace(conf.Prometheus.Path); p != "" {
		paths = append(paths, p)
	}
	return &opsGuard{
		conf:       conf,
		classifier: classifier,
		paths:      paths,
		cidrs:      parseCIDRs(conf.OpsGuardCIDRs),
	}
}

func (g *opsGuard) guarded(path string) bool {
	if g.classifier.ClassifyPath(path) == routing.RouteClassOps {
		return true
	}
	for _, p := range g.paths {
		if routing.HasPathPrefixOnBoundary(path, p) {
			return true
		}
	}
	return false
}

func (g *opsGuard) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.conf.GoAppEnvironment != configuration.Production || !g.conf.OpsGuardEnabled || !g.guarded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if via, ok := g.authorized(r); ok {
			composables.UseLogger(r.Context()).WithField("via", via).Debug("ops guard: allowed")
			next.ServeHTTP(w, r)
			return
		}
		ip, _ := realIP(r, g.conf.RealIPHeader)
		composables.UseLogger(r.Context()).WithFields(logrus.Fields{
			"path": r.URL.Path,
			"ip":   ip,
		}).Info("ops guard: denied")
		http.NotFound(w, r)
	})
}

// authorized reports which credential let the request through.
func (g *opsGuard) authorized(r *http.Request) (string, bool) {
	if g.fromAllowedNetwork(r) {
		return "cidr", true
	}
	if token := strings.TrimSpace(g.conf.OpsGuardToken); token != "" {
		got := strings.TrimSpace(r.Header.Get(opsTokenHeader))
		if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
			return "token", true
		}
	}
	if strings.TrimSpace(g.conf.OpsGuardBasicAuthUser) != "" || strings.TrimSpace(g.conf.OpsGuardBasicAuthPass) != "" {
		u, p, ok := r.BasicAuth()
		if ok &&
			subtle.ConstantTimeCompare([]byte(u), []byte(g.conf.OpsGuardBasicAuthUser)) == 1 &&
			subtle.ConstantTimeCompare([]byte(p), []byte(g.conf.OpsGuardBasicAuthPass)) == 1 {
			return "basic", true
		}
	}
	// Authorize runs first, so an editor session is already on the context.
	if composables.UseAuth(r.Context()).Authenticated() {
		return "session", true
	}
	return "", false
}

func (g *opsGuard) fromAllowedNetwork(r *http.Request) bool {
	if len(g.cidrs) == 0 {
		return false
	}
	ip, ok := realIP(r, g.conf.RealIPHeader)
	if !ok {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range g.cidrs {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// parseCIDRs accepts comma, semicolon or whitespace separated prefixes. A bare
// address is taken as a single-host prefix; anything else is skipped.
func parseCIDRs(raw string) []netip.Prefix {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	if len(parts) == 0 {
		return nil
	}
	out := make([]netip.Prefix, 0, len(parts))
	for _, part := range parts {
		if p, err := netip.ParsePrefix(part); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(part); err == nil {
			out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return out
}

func realIP(r *http.Request, header string) (string, bool) {
	if header != "" {
		if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = strings.TrimSpace(v[:i])
			}
			return stripPort(v)
		}
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		return host, true
	}
	return s, true
}
