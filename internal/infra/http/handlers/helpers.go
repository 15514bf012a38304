package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError traduz o código do erro de domínio em status HTTP. A
// mensagem vai crua para o front decidir a exibição.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch usecase.ErrorCode(err) {
	case usecase.CodeNotFound:
		status = http.StatusNotFound
	case usecase.CodeValidation, usecase.CodeNoOpMove:
		status = http.StatusUnprocessableEntity
	case usecase.CodeForbidden:
		status = http.StatusForbidden
	case usecase.CodeInvalidState, usecase.CodeConflict:
		status = http.StatusConflict
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: usecase.ErrorCode(err)})
}
