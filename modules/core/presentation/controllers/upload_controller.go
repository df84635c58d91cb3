package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/blob"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

type UploadController struct {
	app           application.Application
	uploadService *services.UploadService
	basePath      string
}

func NewUploadController(app application.Application) application.Controller {
	return &UploadController{
		app:           app,
		uploadService: app.Service(services.UploadService{}).(*services.UploadService),
		basePath:      "/api/admin/uploads",
	}
}

func (c *UploadController) Key() string {
	return c.basePath
}

func (c *UploadController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireAuth())
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{key:.+}", c.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/uploads/{key:.+}", c.Serve).Methods(http.MethodGet, http.MethodHead)
}

func (c *UploadController) Create(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		httpapi.Fail(w, r, &ordering.InvalidInputError{Field: "file", Reason: "malformed multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.Fail(w, r, &ordering.InvalidInputError{Field: "file", Reason: "is required"})
		return
	}
	defer file.Close()

	up, err := c.uploadService.Create(r.Context(), composables.UseAuth(r.Context()), header.Filename, file)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, up)
}

func (c *UploadController) Delete(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := c.uploadService.Delete(r.Context(), composables.UseAuth(r.Context()), key); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Serve streams locally stored blobs and redirects to remote stores.
// Documents (resumes) are visible to editors only.
func (c *UploadController) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	private := strings.HasPrefix(key, string(services.KindDocument)+"/")
	if private && !composables.UseAuth(r.Context()).Authenticated() {
		httpapi.Fail(w, r, ordering.ErrNotFound)
		return
	}
	url, err := c.uploadService.URL(r.Context(), key)
	if err != nil {
		httpapi.Fail(w, r, ordering.ErrNotFound)
		return
	}
	if url != blob.LocalURL(key) {
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	info, body, err := c.uploadService.Open(r.Context(), key)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if private {
		w.Header().Set("Content-Disposition", "attachment")
		w.Header().Set("Cache-Control", "private, no-store")
	}
	if !info.LastModified.IsZero() {
		w.Header().Set("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	}
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("upload: stream interrupted")
	}
}
