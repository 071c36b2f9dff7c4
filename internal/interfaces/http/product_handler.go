package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	now func() time.Time
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, now: time.Now}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetSession(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListExpired godoc
// @Summary      Productos vencidos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Fecha de referencia YYYY-MM-DD (hoy por defecto)"
// @Success      200   {array}  dto.ProductResponse
// @Router       /api/products/expired [get]
func (h *ProductHandler) ListExpired(c *fiber.Ctx) error {
	today, err := queryDay(c, h.now)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListExpired(c.UserContext(), GetSession(c), today)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMarkdown godoc
// @Summary      Productos para rebaja (vencen dentro del próximo mes)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Fecha de referencia YYYY-MM-DD (hoy por defecto)"
// @Success      200   {array}  dto.ProductResponse
// @Router       /api/products/markdown [get]
func (h *ProductHandler) ListMarkdown(c *fiber.Ctx) error {
	today, err := queryDay(c, h.now)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMarkdown(c.UserContext(), GetSession(c), today)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExpiredReport godoc
// @Summary      Reporte de vencidos por categoría
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Fecha de referencia YYYY-MM-DD (hoy por defecto)"
// @Success      200   {object}  dto.ExpiredReportResponse
// @Router       /api/products/expired/report [get]
func (h *ProductHandler) ExpiredReport(c *fiber.Ctx) error {
	today, err := queryDay(c, h.now)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ExpiredReport(c.UserContext(), GetSession(c), today)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetSession(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateQuantity godoc
// @Summary      Actualizar existencias
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del producto"
// @Param        body  body  dto.UpdateQuantityRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/quantity [patch]
func (h *ProductHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetSession(c), id, *in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
