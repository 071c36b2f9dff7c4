// Package access contiene la tabla de permisos por operación y la sesión explícita
// que reemplaza al "usuario actual" global. No infiere jerarquía entre roles: cada
// operación enumera los roles que la pueden ejecutar.
package access

import (
	"fmt"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// Operation identifica una operación protegida.
type Operation string

// Operaciones protegidas.
const (
	OpProductView           Operation = "product.view"
	OpProductExpired        Operation = "product.expired"
	OpProductMarkdown       Operation = "product.markdown"
	OpProductCreate         Operation = "product.create"
	OpProductDelete         Operation = "product.delete"
	OpProductUpdateQuantity Operation = "product.update_quantity"

	OpPurchaseOrderView   Operation = "purchase_order.view"
	OpPurchaseOrderCreate Operation = "purchase_order.create"
	OpPurchaseOrderUpdate Operation = "purchase_order.update"
	OpPurchaseOrderDelete Operation = "purchase_order.delete"

	OpStoreView   Operation = "store.view"
	OpStoreCreate Operation = "store.create"
	OpStoreUpdate Operation = "store.update"
	OpStoreDelete Operation = "store.delete"

	OpUserSelf         Operation = "user.self"
	OpUserList         Operation = "user.list"
	OpUserDelete       Operation = "user.delete"
	OpUserChangeRole   Operation = "user.change_role"
	OpUserGrantManager Operation = "user.grant_manager"
)

var (
	anyRole        = roles(entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee)
	adminOrManager = roles(entity.RoleAdmin, entity.RoleManager)
	adminOnly      = roles(entity.RoleAdmin)
)

// permissions tabla declarativa operación → roles permitidos.
// Las tiendas se editan sólo con ADMIN mientras que las órdenes de compra admiten
// ADMIN y MANAGER; la asimetría es intencional.
var permissions = map[Operation]map[entity.Role]struct{}{
	OpProductView:           anyRole,
	OpProductExpired:        anyRole,
	OpProductMarkdown:       anyRole,
	OpProductCreate:         adminOrManager,
	OpProductDelete:         adminOrManager,
	OpProductUpdateQuantity: adminOrManager,

	OpPurchaseOrderView:   adminOrManager,
	OpPurchaseOrderCreate: adminOrManager,
	OpPurchaseOrderUpdate: adminOrManager,
	OpPurchaseOrderDelete: adminOrManager,

	OpStoreView:   adminOrManager,
	OpStoreCreate: adminOnly,
	OpStoreUpdate: adminOnly,
	OpStoreDelete: adminOnly,

	OpUserSelf:         anyRole,
	OpUserList:         adminOnly,
	OpUserDelete:       adminOnly,
	OpUserChangeRole:   adminOnly,
	OpUserGrantManager: adminOnly,
}

func roles(rs ...entity.Role) map[entity.Role]struct{} {
	m := make(map[entity.Role]struct{}, len(rs))
	for _, r := range rs {
		m[r] = struct{}{}
	}
	return m
}

// Allowed indica si role puede ejecutar op. Operación desconocida → false.
func Allowed(role entity.Role, op Operation) bool {
	set, ok := permissions[op]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// AllowedRoles devuelve los roles permitidos para op (orden ADMIN, MANAGER, EMPLOYEE).
func AllowedRoles(op Operation) []entity.Role {
	out := make([]entity.Role, 0, 3)
	for _, r := range entity.Roles() {
		if Allowed(r, op) {
			out = append(out, r)
		}
	}
	return out
}

// Operations lista todas las operaciones registradas en la tabla.
func Operations() []Operation {
	out := make([]Operation, 0, len(permissions))
	for op := range permissions {
		out = append(out, op)
	}
	return out
}

// Check aplica la tabla a la sesión. Sin actor falla cerrado con ErrUnauthorized;
// rol fuera del conjunto → ErrForbidden.
func Check(sess Session, op Operation) error {
	actor := sess.Actor()
	if actor == nil {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}
	if !Allowed(actor.Role, op) {
		return fmt.Errorf("%s: rol %s: %w", op, actor.Role, domain.ErrForbidden)
	}
	return nil
}
