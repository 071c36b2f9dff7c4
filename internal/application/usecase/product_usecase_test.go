package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/authz"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
)

func newProducts(repo *memProductRepo) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(repo, authz.NewGateway(nil), nil)
}

func milk() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:           "Milk",
		ExpirationDate: "2024-01-01",
		MarkdownDate:   "2023-12-15",
		Quantity:       10,
		Manufacturer:   "Acme",
		Brand:          "BrandX",
		Price:          decimal.RequireFromString("2.50"),
		Category:       "Dairy",
	}
}

func TestCreate_LecheYClasificacionVencidos(t *testing.T) {
	uc := newProducts(newMemProductRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, admin, milk())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, decimal.RequireFromString("25").Equal(created.Total))

	expired, err := uc.ListExpired(ctx, admin, day(2024, 2, 1))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "Milk", expired[0].Name)
	assert.Equal(t, "expired", expired[0].Status)

	expired, err = uc.ListExpired(ctx, admin, day(2023, 12, 1))
	require.NoError(t, err)
	assert.Empty(t, expired)
	assert.NotNil(t, expired)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newProducts(newMemProductRepo())
	ctx := context.Background()

	neg := milk()
	neg.Quantity = -1
	_, err := uc.Create(ctx, admin, neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	price := milk()
	price.Price = decimal.NewFromInt(-1)
	_, err = uc.Create(ctx, admin, price)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	order := milk()
	order.MarkdownDate = "2024-02-01"
	_, err = uc.Create(ctx, admin, order)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	date := milk()
	date.ExpirationDate = "01/01/2024"
	_, err = uc.Create(ctx, admin, date)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_EmpleadoDenegadoSinEscribir(t *testing.T) {
	repo := newMemProductRepo()
	uc := newProducts(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, employee, milk())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))

	_, err = uc.Create(ctx, access.Anonymous(), milk())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	list, _ := repo.List(ctx)
	assert.Empty(t, list)
}

func TestUpdateQuantity_NegativaRechazada(t *testing.T) {
	repo := newMemProductRepo()
	uc := newProducts(repo)
	ctx := context.Background()
	created, err := uc.Create(ctx, manager, milk())
	require.NoError(t, err)

	_, err = uc.UpdateQuantity(ctx, manager, created.ID, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	stored, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, 10, stored.Quantity)

	updated, err := uc.UpdateQuantity(ctx, manager, created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.True(t, updated.Total.IsZero())
}

func TestUpdateQuantity_NoExiste(t *testing.T) {
	uc := newProducts(newMemProductRepo())
	_, err := uc.UpdateQuantity(context.Background(), admin, 99, 5)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateQuantity_EmpleadoDenegado(t *testing.T) {
	repo := newMemProductRepo()
	uc := newProducts(repo)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, milk())
	require.NoError(t, err)

	_, err = uc.UpdateQuantity(ctx, employee, created.ID, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	stored, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, 10, stored.Quantity)
}

func TestDelete_NoExisteYConflicto(t *testing.T) {
	repo := newMemProductRepo()
	uc := newProducts(repo)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, admin, 42), domain.ErrProductNotFound)

	created, err := uc.Create(ctx, admin, milk())
	require.NoError(t, err)
	repo.referenced[created.ID] = true
	err = uc.Delete(ctx, admin, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo.referenced[created.ID] = false
	require.NoError(t, uc.Delete(ctx, admin, created.ID))
	_, err = uc.GetByID(ctx, employee, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListMarkdown_VentanaDeUnMes(t *testing.T) {
	uc := newProducts(newMemProductRepo())
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Name: "Yogurt", ExpirationDate: "2024-03-20", Category: "Dairy"},
		{Name: "Pan", ExpirationDate: "2024-04-10", Category: "Bakery"},
		{Name: "Arroz", Category: "Grains"},
		{Name: "Queso", ExpirationDate: "2024-03-01", Category: "Dairy"},
	} {
		_, err := uc.Create(ctx, admin, in)
		require.NoError(t, err)
	}

	list, err := uc.ListMarkdown(ctx, employee, day(2024, 3, 10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Yogurt", list[0].Name)
	assert.Equal(t, "markdown", list[0].Status)
}

func TestExpiredReport_AgrupaPorCategoria(t *testing.T) {
	uc := newProducts(newMemProductRepo())
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Name: "Leche", ExpirationDate: "2024-01-01", Category: "Dairy"},
		{Name: "Pan", ExpirationDate: "2024-01-02", Category: "Bakery"},
		{Name: "Queso", ExpirationDate: "2024-01-03", Category: "Dairy"},
		{Name: "Arroz", ExpirationDate: "2030-01-01", Category: "Grains"},
	} {
		_, err := uc.Create(ctx, admin, in)
		require.NoError(t, err)
	}

	report, err := uc.ExpiredReport(ctx, employee, day(2024, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", report.Date)
	assert.Equal(t, 3, report.Count)
	require.Len(t, report.Categories, 2)
	assert.Equal(t, "Bakery", report.Categories[0].Category)
	assert.Equal(t, "Dairy", report.Categories[1].Category)
	assert.Len(t, report.Categories[1].Products, 2)
}

func TestList_NuncaNil(t *testing.T) {
	uc := newProducts(newMemProductRepo())
	list, err := uc.List(context.Background(), employee)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
