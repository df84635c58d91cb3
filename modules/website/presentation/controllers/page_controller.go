package controllers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
	"github.com/iota-uz/sitecms/modules/website/presentation/controllers/dtos"
	"github.com/iota-uz/sitecms/modules/website/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

const maxPageBody = 1 << 20

type PageController struct {
	app         application.Application
	pageService *services.PageService
	basePath    string
}

func NewPageController(app application.Application) application.Controller {
	return &PageController{
		app:         app,
		pageService: app.Service(services.PageService{}).(*services.PageService),
		basePath:    "/api/admin/pages",
	}
}

func (c *PageController) Key() string {
	return c.basePath
}

func (c *PageController) Register(r *mux.Router) {
	r.HandleFunc("/api/public/pages/{slug}", c.GetPublic).Methods(http.MethodGet)

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireAuth())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{slug}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{slug}", c.Put).Methods(http.MethodPut)
	router.HandleFunc("/{slug}", c.Patch).Methods(http.MethodPatch)
	router.HandleFunc("/{slug}", c.Delete).Methods(http.MethodDelete)
}

func (c *PageController) GetPublic(w http.ResponseWriter, r *http.Request) {
	p, err := c.pageService.Get(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.ToPageResponse(p))
}

func (c *PageController) List(w http.ResponseWriter, r *http.Request) {
	pages, err := c.pageService.List(r.Context(), composables.UseAuth(r.Context()))
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	out := make([]dtos.PageResponse, len(pages))
	for i, p := range pages {
		out[i] = dtos.ToPageResponse(p)
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *PageController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.pageService.Get(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.ToPageResponse(p))
}

func (c *PageController) Put(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPageBody)
	var doc services.PageDocument
	if err := httpapi.DecodeJSON(r, &doc); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	p, err := c.pageService.Put(r.Context(), composables.UseAuth(r.Context()), mux.Vars(r)["slug"], doc)
	c.respond(w, r, p, err)
}

func (c *PageController) Patch(w http.ResponseWriter, r *http.Request) {
	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPageBody))
	if err != nil {
		httpapi.Fail(w, r, &ordering.InvalidInputError{Field: "body", Reason: "too large"})
		return
	}
	p, err := c.pageService.Patch(r.Context(), composables.UseAuth(r.Context()), mux.Vars(r)["slug"], patch)
	c.respond(w, r, p, err)
}

func (c *PageController) respond(w http.ResponseWriter, r *http.Request, p page.Page, err error) {
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.ToPageResponse(p))
}

func (c *PageController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.pageService.Delete(r.Context(), composables.UseAuth(r.Context()), mux.Vars(r)["slug"]); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
