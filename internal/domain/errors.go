package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("orden de compra no encontrada")
	ErrStoreNotFound      = errors.New("tienda no encontrada")
	ErrEmailAlreadyExists = errors.New("ya existe una cuenta con este email")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPersistence        = errors.New("error de persistencia")
	ErrDeadlineExceeded   = errors.New("tiempo de espera agotado")
	ErrExhaustedRetries   = errors.New("reintentos agotados")
	ErrConfiguration      = errors.New("configuración inválida")
)

// Kind categoría de un error tal como la ve la capa de presentación.
type Kind string

const (
	KindValidation       Kind = "VALIDATION"
	KindNotFound         Kind = "NOT_FOUND"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindAccessDenied     Kind = "ACCESS_DENIED"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindConflict         Kind = "CONFLICT"
	KindDeadlineExceeded Kind = "DEADLINE_EXCEEDED"
	KindExhaustedRetries Kind = "EXHAUSTED_RETRIES"
	KindConfiguration    Kind = "CONFIGURATION"
	KindPersistence      Kind = "PERSISTENCE"
)

// KindOf clasifica err. Lo que no se reconoce se trata como falla de persistencia.
// El orden importa: un timeout envuelto en ErrPersistence se reporta como DEADLINE_EXCEEDED.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrStoreNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindAccessDenied
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrDuplicate):
		return KindAlreadyExists
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrDeadlineExceeded):
		return KindDeadlineExceeded
	case errors.Is(err, ErrExhaustedRetries):
		return KindExhaustedRetries
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	default:
		return KindPersistence
	}
}

// IsAuthorization indica si err es un rechazo del control de acceso (sin sesión o rol insuficiente).
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
