package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/sitecms/modules/core/presentation/controllers/dtos"
	"github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// LoginController issues and revokes admin sessions.
type LoginController struct {
	app         application.Application
	authService *services.AuthService
	basePath    string
}

func NewLoginController(app application.Application) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
		basePath:    "/api/auth",
	}
}

func (c *LoginController) Key() string {
	return c.basePath
}

func (c *LoginController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
	router.HandleFunc("/session", c.Session).Methods(http.MethodGet)
}

func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	var dto dtos.LoginDTO
	if err := httpapi.DecodeJSON(r, &dto); err != nil {
		httpapi.Fail(w, r, err)
		return
	}

	u, sess, err := c.authService.Authenticate(r.Context(), dto.Email, dto.Password)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	http.SetCookie(w, services.SessionCookie(sess.Token, sess.ExpiresAt))
	_ = httpapi.WriteJSON(w, http.StatusOK, &dtos.SessionResponse{
		UserID:    u.ID(),
		Email:     u.Email().String(),
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (c *LoginController) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r, configuration.Use().SidCookieKey)
	if token != "" {
		if err := c.authService.Logout(r.Context(), token); err != nil {
			httpapi.Fail(w, r, err)
			return
		}
	}
	http.SetCookie(w, services.SessionCookie("", time.Unix(0, 0)))
	w.WriteHeader(http.StatusNoContent)
}

func (c *LoginController) Session(w http.ResponseWriter, r *http.Request) {
	a := composables.UseAuth(r.Context())
	if !a.Authenticated() {
		httpapi.Fail(w, r, ordering.ErrUnauthorized)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &dtos.SessionResponse{
		UserID:    a.UserID,
		Email:     a.Email,
		ExpiresAt: a.ExpiresAt,
	})
}
