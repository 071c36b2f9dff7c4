package authz

import (
	"errors"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/pkg/logger"
	"github.com/jhoicas/retail-inventory/pkg/metrics"
)

// Gateway punto único de control de acceso. Cada caso de uso protegido lo consulta
// antes de tocar persistencia; un rechazo se registra en warn y se cuenta.
type Gateway struct {
	log *logger.Logger
}

// NewGateway construye el gateway. log nil → logger nulo.
func NewGateway(log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{log: log.Component("authz")}
}

// Authorize devuelve nil si la sesión puede ejecutar op.
func (g *Gateway) Authorize(sess access.Session, op access.Operation) error {
	err := access.Check(sess, op)
	if err == nil || !domain.IsAuthorization(err) {
		return err
	}
	reason := "role"
	if errors.Is(err, domain.ErrUnauthorized) {
		reason = "no_session"
	}
	ev := g.log.Warn().Str("operation", string(op)).Str("reason", reason)
	if actor := sess.Actor(); actor != nil {
		ev = ev.Int64("user_id", actor.ID).Str("role", actor.Role.String())
	}
	ev.Msg("operación rechazada")
	metrics.ObserveDenial(string(op), reason)
	return err
}
