package entity

import "errors"

// Sentinelas devolvidas pela camada de persistência. O usecase traduz
// para os erros de domínio com código.
var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrStageConflict = errors.New("lead stage changed concurrently")
)
