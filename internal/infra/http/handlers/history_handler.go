package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type HistoryHandler struct {
	History usecase.HistoryRepositoryInterface
	Leads   usecase.LeadRepositoryInterface
}

func NewHistoryHandler(history usecase.HistoryRepositoryInterface, leads usecase.LeadRepositoryInterface) *HistoryHandler {
	return &HistoryHandler{History: history, Leads: leads}
}

type historyResponse struct {
	LeadID  string                 `json:"lead_id"`
	Entries []*entity.HistoryEntry `json:"entries"`
}

// HandleGetHistory devolve o ledger do lead, da entrada mais recente
// para a mais antiga.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		writeError(w, usecase.ErrPersistence("falha ao carregar lead: "+err.Error()))
		return
	}
	if lead == nil {
		writeError(w, usecase.ErrNotFound("lead não encontrado"))
		return
	}

	entries, err := h.History.ListForLead(r.Context(), leadID)
	if err != nil {
		writeError(w, usecase.ErrPersistence("falha ao carregar histórico: "+err.Error()))
		return
	}
	if entries == nil {
		entries = []*entity.HistoryEntry{}
	}

	writeJSON(w, http.StatusOK, historyResponse{LeadID: leadID, Entries: entries})
}
