package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// BoardHandler entrega o kanban já recortado pelo papel do ator e com
// os totais por coluna. A projeção é pura: lê o snapshot e deriva.
type BoardHandler struct {
	Leads usecase.LeadRepositoryInterface
}

func NewBoardHandler(leads usecase.LeadRepositoryInterface) *BoardHandler {
	return &BoardHandler{Leads: leads}
}

type boardResponse struct {
	Columns []usecase.BoardColumn `json:"columns"`
}

func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	filters := usecase.BoardFilters{
		Query:       r.URL.Query().Get("q"),
		Temperature: r.URL.Query().Get("temperature"),
		OwnerID:     r.URL.Query().Get("owner_id"),
	}

	leads, err := h.Leads.ListAll(r.Context())
	if err != nil {
		writeError(w, usecase.ErrPersistence("falha ao carregar leads: "+err.Error()))
		return
	}

	columns := usecase.BuildBoard(leads, actor.Role, filters)
	writeJSON(w, http.StatusOK, boardResponse{Columns: columns})
}
