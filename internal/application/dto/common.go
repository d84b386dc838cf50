package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Códigos de error estables para el cliente.
const (
	CodeValidation   = "VALIDATION"
	CodeInvalidBody  = "INVALID_BODY"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodePeriodClosed = "PERIOD_CLOSED"
	CodeHistorical   = "HISTORICAL_PERIOD"
	CodeDuplicates   = "PENDING_DUPLICATES"
	CodeDuplicate    = "DUPLICATE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRetryable    = "RETRYABLE"
	CodeInternal     = "INTERNAL"
)

// PendingDuplicatesResponse rechazo de cierre con el número de duplicados.
type PendingDuplicatesResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Month   string `json:"month"`
	Count   int    `json:"count"`
}

// BatchErrorResponse rechazo de un lote de ingestión.
type BatchErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	RefCarga string `json:"ref_carga"`
	Index    int    `json:"index"`
}
