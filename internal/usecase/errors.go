package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// Códigos de falha do núcleo do pipeline. O handler HTTP traduz código
// em status; os casos de uso nunca engolem erro.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeForbidden    = "FORBIDDEN"
	CodeNoOpMove     = "NO_OP_MOVE"
	CodeInvalidState = "INVALID_STATE"
	CodeConflict     = "CONFLICT"
	CodePersistence  = "PERSISTENCE_ERROR"
)

func ErrNotFound(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func ErrValidation(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func ErrForbidden(msg string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: msg}
}

func ErrNoOpMove(msg string) *DomainError {
	return &DomainError{Code: CodeNoOpMove, Message: msg}
}

func ErrInvalidState(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidState, Message: msg}
}

func ErrConflict(msg string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: msg}
}

func ErrPersistence(msg string) *TechnicalError {
	return &TechnicalError{Code: CodePersistence, Message: msg}
}

// ErrorCode extrai o código de qualquer erro do núcleo ("" se não for).
func ErrorCode(err error) string {
	if d, ok := err.(*DomainError); ok {
		return d.Code
	}
	if t, ok := err.(*TechnicalError); ok {
		return t.Code
	}
	return ""
}
