package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

func session(role entity.Role) access.Session {
	return access.NewSession(&entity.User{ID: 1, Email: "a@b.co", Role: role}, "jti")
}

func TestCheck_SinSesion(t *testing.T) {
	for _, op := range access.Operations() {
		err := access.Check(access.Anonymous(), op)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, op)
	}
}

func TestCheck_EmpleadoSoloLectura(t *testing.T) {
	sess := session(entity.RoleEmployee)
	allowed := map[access.Operation]bool{
		access.OpProductView:     true,
		access.OpProductExpired:  true,
		access.OpProductMarkdown: true,
		access.OpUserSelf:        true,
	}
	for _, op := range access.Operations() {
		err := access.Check(sess, op)
		if allowed[op] {
			assert.NoError(t, err, op)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrForbidden, op)
	}
}

func TestCheck_ManagerNoAdministraTiendasNiUsuarios(t *testing.T) {
	sess := session(entity.RoleManager)
	for _, op := range []access.Operation{
		access.OpStoreCreate, access.OpStoreUpdate, access.OpStoreDelete,
		access.OpUserList, access.OpUserDelete, access.OpUserChangeRole, access.OpUserGrantManager,
	} {
		assert.ErrorIs(t, access.Check(sess, op), domain.ErrForbidden, op)
	}
	for _, op := range []access.Operation{
		access.OpPurchaseOrderCreate, access.OpPurchaseOrderUpdate, access.OpPurchaseOrderDelete,
		access.OpProductCreate, access.OpProductDelete, access.OpStoreView,
	} {
		assert.NoError(t, access.Check(sess, op), op)
	}
}

func TestCheck_AdminTodo(t *testing.T) {
	sess := session(entity.RoleAdmin)
	for _, op := range access.Operations() {
		assert.NoError(t, access.Check(sess, op), op)
	}
}

func TestAllowed_OperacionDesconocida(t *testing.T) {
	assert.False(t, access.Allowed(entity.RoleAdmin, access.Operation("product.teleport")))
	assert.ErrorIs(t, access.Check(session(entity.RoleAdmin), "product.teleport"), domain.ErrForbidden)
}

func TestAllowedRoles(t *testing.T) {
	assert.Equal(t, []entity.Role{entity.RoleAdmin}, access.AllowedRoles(access.OpStoreCreate))
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleManager}, access.AllowedRoles(access.OpPurchaseOrderCreate))
	assert.Len(t, access.AllowedRoles(access.OpProductView), 3)
}
