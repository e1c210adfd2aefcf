package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	AuthUC *usecase.AuthUseCase
	Cookie CookieConfig
	Log    logger.Logger
}

func NewAuthHandler(uc *usecase.AuthUseCase, cookie CookieConfig, log logger.Logger) *AuthHandler {
	return &AuthHandler{AuthUC: uc, Cookie: cookie, Log: log}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}

	u, err := h.AuthUC.Register(r.Context(), input)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, "user registered", u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.AuthUC.Login(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordAuthFailure("invalid_credentials")
		}
		response.Error(w, h.Log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, "login successful", out)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.AuthUC.Logout(r.Context(), id); err != nil {
		response.Error(w, h.Log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	u, err := h.AuthUC.Me(r.Context(), id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "current user", u)
}
