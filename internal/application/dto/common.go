package dto

// DateLayout formato de fechas en requests y responses (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP. Code es el tipo de error (VALIDATION, NOT_FOUND, ...).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ExistsResponse respuesta de comprobaciones de existencia.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
