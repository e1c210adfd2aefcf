package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.DashboardUseCase
	Log         logger.Logger
}

func NewDashboardHandler(uc *usecase.DashboardUseCase, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{DashboardUC: uc, Log: log}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.DashboardUC.Summary(r.Context())
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "dashboard summary", s)
}

func Options(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, "form options", usecase.FormOptions())
}
