package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type InteractionHandler struct {
	InteractionUC *usecase.InteractionUseCase
	Log           logger.Logger
}

func NewInteractionHandler(uc *usecase.InteractionUseCase, log logger.Logger) *InteractionHandler {
	return &InteractionHandler{InteractionUC: uc, Log: log}
}

func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var input usecase.CreateInteractionInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.InteractionUC.Create(r.Context(), chi.URLParam(r, "leadId"), input, id)
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}

	middleware.RecordInteraction(string(out.Interaction.Type))
	middleware.RecordScoreRecalculation("interaction")
	if out.Task != nil {
		middleware.RecordFollowUpTask()
	}
	response.JSON(w, http.StatusCreated, "interaction recorded", out)
}

func (h *InteractionHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.InteractionUC.List(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		response.Error(w, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, "interactions", list)
}
