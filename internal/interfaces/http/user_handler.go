package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
)

// UserHandler administración de usuarios (sólo ADMIN).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByEmail godoc
// @Summary      Obtener usuario por email
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        email  path  string  true  "Email"
// @Success      200    {object}  dto.UserResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/users/{email} [get]
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	out, err := h.uc.GetByEmail(c.UserContext(), GetSession(c), c.Params("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        email  path  string  true  "Email"
// @Success      204
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/users/{email} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteByEmail(c.UserContext(), GetSession(c), c.Params("email")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeRole godoc
// @Summary      Cambiar rol
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        email  path  string                 true  "Email"
// @Param        body   body  dto.ChangeRoleRequest  true  "Nuevo rol"
// @Success      200    {object}  dto.UserResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/users/{email}/role [patch]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.ChangeRole(c.UserContext(), GetSession(c), c.Params("email"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GrantManager godoc
// @Summary      Otorgar rol MANAGER
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        email  path  string  true  "Email"
// @Success      200    {object}  dto.UserResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/users/{email}/manager [post]
func (h *UserHandler) GrantManager(c *fiber.Ctx) error {
	out, err := h.uc.GrantManager(c.UserContext(), GetSession(c), c.Params("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
