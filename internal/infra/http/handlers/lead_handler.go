package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// LeadHandler expõe as mutações do funil: criação, edição de campos,
// movimentos de estágio, fechamento, confirmação de pagamento e notas.
type LeadHandler struct {
	CreateUC  *usecase.CreateLeadUseCase
	UpdateUC  *usecase.UpdateLeadUseCase
	MoveUC    *usecase.MoveStageUseCase
	PaymentUC *usecase.ConfirmPaymentUseCase
	NoteUC    *usecase.AddNoteUseCase
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	moveUC *usecase.MoveStageUseCase,
	paymentUC *usecase.ConfirmPaymentUseCase,
	noteUC *usecase.AddNoteUseCase,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:  createUC,
		UpdateUC:  updateUC,
		MoveUC:    moveUC,
		PaymentUC: paymentUC,
		NoteUC:    noteUC,
	}
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ErrValidation("JSON inválido: "+err.Error()))
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ErrValidation("JSON inválido: "+err.Error()))
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type moveRequest struct {
	FromStage string `json:"from_stage"`
	ToStage   string `json:"to_stage"`
}

func (h *LeadHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.ErrValidation("JSON inválido: "+err.Error()))
		return
	}

	outcome, err := h.MoveUC.ProposeMove(r.Context(), chi.URLParam(r, "id"), req.FromStage, req.ToStage, actor)
	if err != nil {
		if usecase.ErrorCode(err) == usecase.CodeConflict {
			middleware.RecordMoveConflict()
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (h *LeadHandler) HandleConfirmClosing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	var input usecase.ClosingDataInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ErrValidation("JSON inválido: "+err.Error()))
		return
	}

	outcome, err := h.MoveUC.ConfirmClosingData(r.Context(), chi.URLParam(r, "id"), input, actor)
	if err != nil {
		if usecase.ErrorCode(err) == usecase.CodeConflict {
			middleware.RecordMoveConflict()
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (h *LeadHandler) HandleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	outcome, err := h.PaymentUC.Execute(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		if usecase.ErrorCode(err) == usecase.CodeConflict {
			middleware.RecordMoveConflict()
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

type noteRequest struct {
	Text string `json:"text"`
}

func (h *LeadHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, usecase.ErrForbidden("ator não autenticado"))
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, usecase.ErrValidation("JSON inválido: "+err.Error()))
		return
	}

	entry, err := h.NoteUC.Execute(r.Context(), chi.URLParam(r, "id"), req.Text, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
