package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coreservices "github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/presentation/controllers/dtos"
	"github.com/iota-uz/sitecms/modules/website/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxContactBody  = 64 << 10
)

type InquiryController struct {
	app            application.Application
	inquiryService *services.InquiryService
	uploadService  *coreservices.UploadService
	basePath       string
}

func NewInquiryController(app application.Application) application.Controller {
	return &InquiryController{
		app:            app,
		inquiryService: app.Service(services.InquiryService{}).(*services.InquiryService),
		uploadService:  app.Service(coreservices.UploadService{}).(*coreservices.UploadService),
		basePath:       "/api/admin/inquiries",
	}
}

func (c *InquiryController) Key() string {
	return c.basePath
}

func (c *InquiryController) Register(r *mux.Router) {
	r.HandleFunc("/api/public/contact", c.Contact).Methods(http.MethodPost)
	r.HandleFunc("/api/public/jobs/{id:"+uuidPattern+"}/apply", c.Apply).Methods(http.MethodPost)

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireAuth())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id:"+uuidPattern+"}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id:"+uuidPattern+"}", c.Delete).Methods(http.MethodDelete)
}

func (c *InquiryController) Contact(w http.ResponseWriter, r *http.Request) {
	httpapi.LimitBody(w, r, maxContactBody)
	var dto services.InquiryDTO
	if err := httpapi.DecodeJSON(r, &dto); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	created, err := c.inquiryService.SubmitContact(r.Context(), dto)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.ToSubmissionResponse(created))
}

// Apply accepts a multipart form with the applicant fields and an optional
// "resume" file.
func (c *InquiryController) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		httpapi.Fail(w, r, &ordering.InvalidInputError{Field: "body", Reason: "malformed multipart body"})
		return
	}
	dto := services.InquiryDTO{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Company: r.FormValue("company"),
		Message: r.FormValue("message"),
	}
	if err := httpapi.Validate(dto); err != nil {
		httpapi.Fail(w, r, err)
		return
	}

	var resume *services.Attachment
	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()
		resume = &services.Attachment{Name: header.Filename, Body: file}
	case !errors.Is(err, http.ErrMissingFile):
		httpapi.Fail(w, r, &ordering.InvalidInputError{Field: "resume", Reason: "unreadable file"})
		return
	}

	created, err := c.inquiryService.Apply(r.Context(), jobID, dto, resume)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.ToSubmissionResponse(created))
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ordering.InvalidInputError{Field: name, Reason: "must be a non-negative integer"}
	}
	return v, nil
}

func (c *InquiryController) findParams(r *http.Request) (*inquiry.FindParams, error) {
	limit, err := intParam(r, "limit", defaultPageSize)
	if err != nil {
		return nil, err
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		return nil, err
	}
	params := &inquiry.FindParams{
		Kind:   inquiry.Kind(r.URL.Query().Get("kind")),
		Limit:  min(max(limit, 1), maxPageSize),
		Offset: offset,
	}
	if raw := r.URL.Query().Get("jobId"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return nil, &ordering.InvalidInputError{Field: "jobId", Reason: "must be a UUID"}
		}
		params.JobID = jobID
	}
	return params, nil
}

func (c *InquiryController) assetURL(ctx context.Context) dtos.AssetURL {
	return assetURL(ctx, c.uploadService)
}

func (c *InquiryController) List(w http.ResponseWriter, r *http.Request) {
	params, err := c.findParams(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	items, total, err := c.inquiryService.GetPaginated(r.Context(), composables.UseAuth(r.Context()), params)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	url := c.assetURL(r.Context())
	out := make([]dtos.InquiryResponse, len(items))
	for i, item := range items {
		out[i] = dtos.ToInquiryResponse(item, url)
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.InquiryPage{
		Items:  out,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

func (c *InquiryController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	item, err := c.inquiryService.GetByID(r.Context(), composables.UseAuth(r.Context()), id)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.ToInquiryResponse(item, c.assetURL(r.Context())))
}

func (c *InquiryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	if err := c.inquiryService.Delete(r.Context(), composables.UseAuth(r.Context()), id); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
