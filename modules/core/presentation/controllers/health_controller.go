package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/httpapi"
)

type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet, http.MethodHead)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "memory"}
	status := http.StatusOK

	if pool := c.app.DB(); pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		resp.Database = "ok"
		if err := pool.Ping(ctx); err != nil {
			c.app.Logger().WithError(err).Error("health: database ping failed")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	_ = httpapi.WriteJSON(w, status, resp)
}
