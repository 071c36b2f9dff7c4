package access

import (
	"time"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// Session actor autenticado de una operación. El valor cero es "sin sesión".
type Session struct {
	User      *entity.User
	TokenID   string    // jti del token que abrió la sesión (para cerrar sesión)
	ExpiresAt time.Time // vencimiento del token; cero si se desconoce
}

// Anonymous sesión sin actor.
func Anonymous() Session { return Session{} }

// NewSession sesión para user.
func NewSession(user *entity.User, tokenID string) Session {
	return Session{User: user, TokenID: tokenID}
}

// WithExpiry copia de s con vencimiento.
func (s Session) WithExpiry(t time.Time) Session {
	s.ExpiresAt = t
	return s
}

// Actor usuario de la sesión o nil.
func (s Session) Actor() *entity.User { return s.User }

// Authenticated indica si hay actor.
func (s Session) Authenticated() bool { return s.User != nil }
