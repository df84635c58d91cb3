package website_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/modules/core"
	corepersistence "github.com/iota-uz/sitecms/modules/core/infrastructure/persistence"
	corecontrollers "github.com/iota-uz/sitecms/modules/core/presentation/controllers"
	coreservices "github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/modules/website"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/blob"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/mailer"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/server"
)

const (
	editorEmail    = "editor@example.com"
	editorPassword = "correct horse battery"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

type apiFixture struct {
	t     *testing.T
	srv   *httptest.Server
	token string
	mail  *recordingMailer
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

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
	mail := &recordingMailer{}
	require.NoError(t, website.NewModule(&website.ModuleOptions{
		Stores:     &stores,
		Pages:      persistence.NewInmemPageRepository(),
		Inquiries:  persistence.NewInmemInquiryRepository(),
		Mailer:     mail,
		Registerer: prometheus.NewRegistry(),
	}).Register(app))

	users := app.Service(coreservices.UserService{}).(*coreservices.UserService)
	_, _, err := users.EnsureUser(context.Background(), editorEmail, editorPassword)
	require.NoError(t, err)

	authService := app.Service(coreservices.AuthService{}).(*coreservices.AuthService)
	app.RegisterMiddleware(
		middleware.RequestParams(),
		middleware.Authorize(authService, "sid"),
	)
	handler := server.NewHTTPServer(app, corecontrollers.NotFound(), corecontrollers.MethodNotAllowed()).Handler()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f := &apiFixture{t: t, srv: srv, mail: mail}
	var session struct {
		Token string `json:"token"`
	}
	f.expect(f.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    editorEmail,
		"password": editorPassword,
	}, ""), http.StatusOK, &session)
	require.NotEmpty(t, session.Token)
	f.token = session.Token
	return f
}

func (f *apiFixture) do(method, path string, body any, token string) *http.Response {
	f.t.Helper()
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = strings.NewReader(raw)
		} else {
			payload, err := json.Marshal(body)
			require.NoError(f.t, err)
			reader = bytes.NewReader(payload)
		}
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(f.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.srv.Client().Do(req)
	require.NoError(f.t, err)
	return resp
}

func (f *apiFixture) admin(method, path string, body any) *http.Response {
	f.t.Helper()
	return f.do(method, path, body, f.token)
}

// expect checks the status and decodes the body into out when out is not nil.
func (f *apiFixture) expect(resp *http.Response, status int, out any) {
	f.t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(f.t, err)
	require.Equal(f.t, status, resp.StatusCode, "body: %s", raw)
	if out != nil {
		require.NoError(f.t, json.Unmarshal(raw, out), "body: %s", raw)
	}
}

type record struct {
	ID             uuid.UUID `json:"id"`
	Order          int       `json:"order"`
	IsActive       bool      `json:"isActive"`
	Title          string    `json:"title"`
	Name           string    `json:"name"`
	IsHeadquarters bool      `json:"isHeadquarters"`
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta"`
}

func (f *apiFixture) create(path string, body map[string]any) record {
	f.t.Helper()
	var out record
	f.expect(f.admin(http.MethodPost, "/api/admin/"+path, body), http.StatusCreated, &out)
	return out
}

func (f *apiFixture) list(path string) []record {
	f.t.Helper()
	var out []record
	f.expect(f.admin(http.MethodGet, "/api/admin/"+path, nil), http.StatusOK, &out)
	return out
}

func (f *apiFixture) publicList(path string) []record {
	f.t.Helper()
	var out []record
	f.expect(f.do(http.MethodGet, "/api/public/"+path, nil, ""), http.StatusOK, &out)
	return out
}

func (f *apiFixture) reorder(path string, ids ...uuid.UUID) *http.Response {
	f.t.Helper()
	return f.admin(http.MethodPut, "/api/admin/"+path+"/reorder", map[string]any{"orderedIds": ids})
}

func ids(records []record) []uuid.UUID {
	out := make([]uuid.UUID, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func orders(records []record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Order
	}
	return out
}

func TestAPI_ReorderJobs(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	a := f.create("jobs", map[string]any{"title": "Backend engineer"})
	b := f.create("jobs", map[string]any{"title": "Designer"})
	c := f.create("jobs", map[string]any{"title": "Support lead"})
	require.Equal(t, []int{0, 1, 2}, []int{a.Order, b.Order, c.Order})

	f.expect(f.reorder("jobs", c.ID, a.ID, b.ID), http.StatusNoContent, nil)
	got := f.list("jobs")
	assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, ids(got))
	assert.Equal(t, []int{0, 1, 2}, orders(got))

	f.expect(f.reorder("jobs", c.ID, a.ID, b.ID), http.StatusNoContent, nil)
	assert.Equal(t, got, f.list("jobs"), "repeating a reorder changes nothing")
}

func TestAPI_ReorderPermutations(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	var created []record
	for _, name := range []string{"A", "B", "C", "D"} {
		created = append(created, f.create("partners", map[string]any{"name": name}))
	}
	permutations := [][]int{
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{0, 1, 2, 3},
		{2, 0, 3, 1},
	}
	for _, perm := range permutations {
		want := make([]uuid.UUID, len(perm))
		for i, idx := range perm {
			want[i] = created[idx].ID
		}
		f.expect(f.reorder("partners", want...), http.StatusNoContent, nil)
		got := f.list("partners")
		assert.Equal(t, want, ids(got))
		assert.Equal(t, []int{0, 1, 2, 3}, orders(got))
	}
}

func TestAPI_CreateAppendsLocations(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	dubai := f.create("locations", map[string]any{"name": "Dubai", "city": "Dubai", "country": "AE"})
	assert.Equal(t, 0, dubai.Order)
	karachi := f.create("locations", map[string]any{"name": "Karachi", "city": "Karachi", "country": "PK", "isHeadquarters": true})
	assert.Equal(t, 1, karachi.Order)

	admin := f.list("locations")
	assert.Equal(t, []uuid.UUID{dubai.ID, karachi.ID}, ids(admin), "admin list follows order")

	public := f.publicList("locations")
	require.Len(t, public, 2)
	assert.Equal(t, karachi.ID, public[0].ID, "headquarters first on the public site")
	assert.True(t, public[0].IsHeadquarters)
}

func TestAPI_ExplicitOrderOnUpdate(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	member := f.create("team-members", map[string]any{"name": "Aisha", "role": "CEO"})

	var updated record
	f.expect(f.admin(http.MethodPut, "/api/admin/team-members/"+member.ID.String(), map[string]any{
		"name": "Aisha", "role": "Founder", "order": 7,
	}), http.StatusOK, &updated)
	assert.Equal(t, 7, updated.Order)

	f.expect(f.admin(http.MethodPut, "/api/admin/team-members/"+member.ID.String(), map[string]any{
		"name": "Aisha", "role": "Founder",
	}), http.StatusOK, &updated)
	assert.Equal(t, 7, updated.Order, "order is kept when omitted")

	var failure apiError
	f.expect(f.admin(http.MethodPost, "/api/admin/team-members", map[string]any{
		"name": "Bilal", "role": "CTO", "order": -1,
	}), http.StatusBadRequest, &failure)
	assert.Equal(t, "INVALID_INPUT", failure.Code)
	assert.Equal(t, "order", failure.Meta["field"])
}

func TestAPI_SolutionScopesAreIsolated(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	banking := f.create("industries", map[string]any{"slug": "banking", "name": "Banking"})
	logistics := f.create("industries", map[string]any{"slug": "logistics", "name": "Logistics"})
	bankingPath := "industries/" + banking.ID.String() + "/solutions"
	logisticsPath := "industries/" + logistics.ID.String() + "/solutions"

	s1 := f.create(bankingPath, map[string]any{"title": "Core banking"})
	s2 := f.create(bankingPath, map[string]any{"title": "Payments"})
	s3 := f.create(logisticsPath, map[string]any{"title": "Fleet tracking"})
	require.Equal(t, []int{0, 1, 0}, []int{s1.Order, s2.Order, s3.Order})

	f.expect(f.reorder(bankingPath, s2.ID, s1.ID), http.StatusNoContent, nil)
	assert.Equal(t, []uuid.UUID{s2.ID, s1.ID}, ids(f.list(bankingPath)))
	other := f.list(logisticsPath)
	require.Len(t, other, 1)
	assert.Equal(t, 0, other[0].Order)

	var failure apiError
	f.expect(f.reorder(bankingPath, s2.ID, s1.ID, s3.ID), http.StatusBadRequest, &failure)
	assert.Equal(t, s3.ID.String(), failure.Meta["ids"], "a solution of another industry is foreign")

	f.expect(f.admin(http.MethodDelete, "/api/admin/industries/"+banking.ID.String(), nil), http.StatusNoContent, nil)
	f.expect(f.admin(http.MethodGet, "/api/admin/"+bankingPath, nil), http.StatusNotFound, nil)
	assert.Len(t, f.list(logisticsPath), 1)
}

func TestAPI_InactiveIndustryHidesSolutions(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	retail := f.create("industries", map[string]any{"slug": "retail", "name": "Retail", "isActive": false})
	path := "industries/" + retail.ID.String() + "/solutions"
	f.create(path, map[string]any{"title": "Point of sale"})

	assert.Len(t, f.list(path), 1)
	f.expect(f.do(http.MethodGet, "/api/public/"+path, nil, ""), http.StatusNotFound, nil)
}

func TestAPI_ReorderRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	a := f.create("jobs", map[string]any{"title": "A"})
	b := f.create("jobs", map[string]any{"title": "B"})
	before := f.list("jobs")

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"not a list", `{"orderedIds":"not-a-list"}`, "orderedIds"},
		{"empty list", `{"orderedIds":[]}`, "orderedIds"},
		{"missing key", `{}`, "orderedIds"},
		{"bad uuid", `{"orderedIds":["nope"]}`, "orderedIds[0]"},
		{"malformed json", `{"orderedIds":[`, "body"},
		{"missing record", map[string]any{"orderedIds": []uuid.UUID{a.ID}}, "orderedIds"},
		{"duplicate", map[string]any{"orderedIds": []uuid.UUID{a.ID, a.ID, b.ID}}, "orderedIds"},
		{"unknown id", map[string]any{"orderedIds": []uuid.UUID{a.ID, b.ID, uuid.New()}}, "orderedIds"},
	}
	for _, tc := range tests {
		var failure apiError
		f.expect(f.admin(http.MethodPut, "/api/admin/jobs/reorder", tc.body), http.StatusBadRequest, &failure)
		assert.Equal(t, "INVALID_INPUT", failure.Code, tc.name)
		assert.Equal(t, tc.field, failure.Meta["field"], tc.name)
	}
	assert.Equal(t, before, f.list("jobs"), "rejected reorders leave the store untouched")
}

func TestAPI_PublicHidesInactivePlans(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	starter := f.create("pricing-plans", map[string]any{
		"name":         "Starter",
		"monthlyPrice": "19.00",
		"yearlyPrice":  "190.00",
		"features":     []any{"5 users", map[string]any{"label": "Storage", "value": "10 GB", "style": "highlight"}},
	})
	legacy := f.create("pricing-plans", map[string]any{"name": "Legacy", "isActive": false})

	public := f.publicList("pricing-plans")
	assert.Equal(t, []uuid.UUID{starter.ID}, ids(public))
	assert.ElementsMatch(t, []uuid.UUID{starter.ID, legacy.ID}, ids(f.list("pricing-plans")))
	f.expect(f.do(http.MethodGet, "/api/public/pricing-plans/"+legacy.ID.String(), nil, ""), http.StatusNotFound, nil)

	var plan struct {
		YearlySavings string            `json:"yearlySavings"`
		Features      []json.RawMessage `json:"features"`
	}
	f.expect(f.do(http.MethodGet, "/api/public/pricing-plans/"+starter.ID.String(), nil, ""), http.StatusOK, &plan)
	assert.Equal(t, "38.00", plan.YearlySavings)
	require.Len(t, plan.Features, 2)
	assert.JSONEq(t, `"5 users"`, string(plan.Features[0]))
	assert.JSONEq(t, `{"label":"Storage","value":"10 GB","style":"highlight"}`, string(plan.Features[1]))

	var failure apiError
	f.expect(f.admin(http.MethodPost, "/api/admin/pricing-plans", map[string]any{
		"name": "Broken", "monthlyPrice": "-1",
	}), http.StatusBadRequest, &failure)
	assert.Equal(t, "monthlyPrice", failure.Meta["field"])
}

func TestAPI_AdminRequiresSession(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	a := f.create("jobs", map[string]any{"title": "A"})
	b := f.create("jobs", map[string]any{"title": "B"})
	before := f.list("jobs")

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPut, "/api/admin/jobs/reorder", map[string]any{"orderedIds": []uuid.UUID{b.ID, a.ID}}},
		{http.MethodPost, "/api/admin/jobs", map[string]any{"title": "C"}},
		{http.MethodPut, "/api/admin/jobs/" + a.ID.String(), map[string]any{"title": "Renamed"}},
		{http.MethodDelete, "/api/admin/jobs/" + a.ID.String(), nil},
		{http.MethodGet, "/api/admin/jobs", nil},
	}
	for _, tc := range requests {
		for _, token := range []string{"", "forged-token"} {
			var failure apiError
			f.expect(f.do(tc.method, tc.path, tc.body, token), http.StatusUnauthorized, &failure)
			assert.Equal(t, "UNAUTHORIZED", failure.Code)
		}
	}
	assert.Equal(t, before, f.list("jobs"))
}

func TestAPI_IndustrySlugs(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	f.create("industries", map[string]any{"slug": "banking", "name": "Banking"})

	var failure apiError
	f.expect(f.admin(http.MethodPost, "/api/admin/industries", map[string]any{
		"slug": "banking", "name": "Banking again",
	}), http.StatusConflict, &failure)
	assert.Equal(t, "CONFLICT", failure.Code)

	f.expect(f.admin(http.MethodPost, "/api/admin/industries", map[string]any{
		"slug": "Not A Slug", "name": "Broken",
	}), http.StatusBadRequest, &failure)
	assert.Equal(t, "slug", failure.Meta["field"])
}

func TestAPI_SearchKeepsOrder(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	f.create("jobs", map[string]any{"title": "Senior backend engineer"})
	f.create("jobs", map[string]any{"title": "Office manager"})
	f.create("jobs", map[string]any{"title": "Backend intern"})

	var got []record
	f.expect(f.admin(http.MethodGet, "/api/admin/jobs?q=backend", nil), http.StatusOK, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "Senior backend engineer", got[0].Title)
	assert.Equal(t, "Backend intern", got[1].Title)
}

func TestAPI_Pages(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	f.expect(f.do(http.MethodGet, "/api/public/pages/pricing", nil, ""), http.StatusNotFound, nil)

	f.expect(f.admin(http.MethodPut, "/api/admin/pages/pricing", map[string]any{
		"title":   "Pricing",
		"content": map[string]any{"hero": map[string]any{"heading": "Simple pricing"}, "faq": []string{"a"}},
	}), http.StatusOK, nil)
	f.expect(f.admin(http.MethodPatch, "/api/admin/pages/pricing", `{"content":{"faq":null}}`), http.StatusOK, nil)

	var page struct {
		Title     string          `json:"title"`
		Content   json.RawMessage `json:"content"`
		UpdatedBy string          `json:"updatedBy"`
	}
	f.expect(f.do(http.MethodGet, "/api/public/pages/pricing", nil, ""), http.StatusOK, &page)
	assert.Equal(t, "Pricing", page.Title)
	assert.JSONEq(t, `{"hero":{"heading":"Simple pricing"}}`, string(page.Content))
	assert.NotEmpty(t, page.UpdatedBy)

	var failure apiError
	f.expect(f.admin(http.MethodPut, "/api/admin/pages/pricing", map[string]any{
		"title": "Pricing", "content": []int{1},
	}), http.StatusBadRequest, &failure)
	assert.Equal(t, "content", failure.Meta["field"])
	f.expect(f.do(http.MethodPut, "/api/admin/pages/pricing", map[string]any{"title": "x", "content": map[string]any{}}, ""), http.StatusUnauthorized, nil)
}

func TestAPI_RejectsOversizedBodies(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	job := f.create("jobs", map[string]any{"title": "A"})

	padded := func(key string, n int) string {
		return `{"` + key + `":"` + strings.Repeat("a", n) + `"}`
	}
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
	}{
		{"contact", http.MethodPost, "/api/public/contact", padded("message", 80<<10), ""},
		{"create", http.MethodPost, "/api/admin/jobs", padded("title", 1<<20+1024), f.token},
		{"update", http.MethodPut, "/api/admin/jobs/" + job.ID.String(), padded("title", 1<<20+1024), f.token},
		{"reorder", http.MethodPut, "/api/admin/jobs/reorder", padded("orderedIds", 1<<20+1024), f.token},
	}
	for _, tc := range tests {
		var failure apiError
		f.expect(f.do(tc.method, tc.path, tc.body, tc.token), http.StatusBadRequest, &failure)
		assert.Equal(t, "INVALID_INPUT", failure.Code, tc.name)
		assert.Equal(t, "body", failure.Meta["field"], tc.name)
	}

	listed := f.list("jobs")
	require.Len(t, listed, 1)
	assert.Equal(t, "A", listed[0].Title)
}

func TestAPI_ContactSubmissionNotifies(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	f.expect(f.do(http.MethodPost, "/api/public/contact", map[string]any{
		"name": "Sara", "email": "Sara@Example.com", "message": "Tell me more",
	}, ""), http.StatusCreated, nil)

	require.Eventually(t, func() bool { return len(f.mail.messages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	msg := f.mail.messages()[0]
	assert.Equal(t, "sara@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Sara")

	var page struct {
		Items []struct {
			Kind  string `json:"kind"`
			Email string `json:"email"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	f.expect(f.admin(http.MethodGet, "/api/admin/inquiries?kind=contact", nil), http.StatusOK, &page)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "contact", page.Items[0].Kind)

	var failure apiError
	f.expect(f.do(http.MethodPost, "/api/public/contact", map[string]any{"name": "No email"}, ""), http.StatusBadRequest, &failure)
	assert.Equal(t, "email", failure.Meta["field"])
}

func TestAPI_ApplyForJob(t *testing.T) {
	t.Parallel()
	f := newAPI(t)
	open := f.create("jobs", map[string]any{"title": "Backend engineer"})
	closed := f.create("jobs", map[string]any{"title": "Archived role", "isActive": false})

	apply := func(jobID uuid.UUID) *http.Response {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.WriteField("name", "Omar"))
		require.NoError(t, w.WriteField("email", "omar@example.com"))
		part, err := w.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/api/public/jobs/"+jobID.String()+"/apply", &body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := f.srv.Client().Do(req)
		require.NoError(t, err)
		return resp
	}

	f.expect(apply(open.ID), http.StatusCreated, nil)
	f.expect(apply(closed.ID), http.StatusNotFound, nil)

	require.Eventually(t, func() bool { return len(f.mail.messages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, f.mail.messages()[0].Subject, "Backend engineer")

	var page struct {
		Items []struct {
			JobID     string `json:"jobId"`
			ResumeURL string `json:"resumeUrl"`
		} `json:"items"`
	}
	f.expect(f.admin(http.MethodGet, "/api/admin/inquiries?jobId="+open.ID.String(), nil), http.StatusOK, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, open.ID.String(), page.Items[0].JobID)
	assert.NotEmpty(t, page.Items[0].ResumeURL)
}
