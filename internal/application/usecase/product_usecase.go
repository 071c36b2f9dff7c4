package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/application/authz"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

// ProductUseCase alta, baja, stock y clasificación por vencimiento de productos.
type ProductUseCase struct {
	repo repository.ProductRepository
	gate *authz.Gateway
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, gate *authz.Gateway, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, gate: gate, log: log.Component("products")}
}

// Create crea un producto. Total y DateAdded los calcula la base de datos.
func (uc *ProductUseCase) Create(ctx context.Context, sess access.Session, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpProductCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	exp, err := dto.ParseDate("expiration_date", in.ExpirationDate)
	if err != nil {
		return nil, err
	}
	markdown, err := dto.ParseDate("markdown_date", in.MarkdownDate)
	if err != nil {
		return nil, err
	}
	if exp != nil && markdown != nil && markdown.After(*exp) {
		return nil, fmt.Errorf("%w: markdown_date posterior a expiration_date", domain.ErrInvalidInput)
	}
	product := &entity.Product{
		Name:           in.Name,
		Description:    in.Description,
		ExpirationDate: exp,
		MarkdownDate:   markdown,
		Quantity:       in.Quantity,
		Manufacturer:   in.Manufacturer,
		Brand:          in.Brand,
		Price:          in.Price,
		Category:       in.Category,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("producto creado")
	return toProductResponse(product, time.Now()), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, sess access.Session, id int64) (*dto.ProductResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpProductView); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product, time.Now()), nil
}

// List todos los productos. Nunca nil.
func (uc *ProductUseCase) List(ctx context.Context, sess access.Session) ([]dto.ProductResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpProductView); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list, time.Now()), nil
}

// Delete elimina un producto. ErrConflict si hay órdenes de compra que lo referencian.
func (uc *ProductUseCase) Delete(ctx context.Context, sess access.Session, id int64) error {
	if err := uc.gate.Authorize(sess, access.OpProductDelete); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("producto %d tiene órdenes de compra: %w", id, err)
		}
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	uc.log.Info().Int64("product_id", id).Msg("producto eliminado")
	return nil
}

// UpdateQuantity reemplaza el stock. Cantidad negativa → ErrInvalidInput.
func (uc *ProductUseCase) UpdateQuantity(ctx context.Context, sess access.Session, id int64, quantity int) (*dto.ProductResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpProductUpdateQuantity); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	ok, err := uc.repo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product, time.Now()), nil
}

// ListExpired productos con vencimiento anterior a today.
func (uc *ProductUseCase) ListExpired(ctx context.Context, sess access.Session, today time.Time) ([]dto.ProductResponse, error) {
	return uc.listByStatus(ctx, sess, access.OpProductExpired, today, inventory.StatusExpired)
}

// ListMarkdown productos que vencen dentro del próximo mes calendario.
func (uc *ProductUseCase) ListMarkdown(ctx context.Context, sess access.Session, today time.Time) ([]dto.ProductResponse, error) {
	return uc.listByStatus(ctx, sess, access.OpProductMarkdown, today, inventory.StatusMarkdown)
}

func (uc *ProductUseCase) listByStatus(ctx context.Context, sess access.Session, op access.Operation, today time.Time, status inventory.Status) ([]dto.ProductResponse, error) {
	if err := uc.gate.Authorize(sess, op); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(inventory.Filter(list, today, status), today), nil
}

// ExpiredReport vencidos agrupados por categoría; cada producto vencido queda registrado en warn.
func (uc *ProductUseCase) ExpiredReport(ctx context.Context, sess access.Session, today time.Time) (*dto.ExpiredReportResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpProductExpired); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	expired := inventory.Filter(list, today, inventory.StatusExpired)
	groups := inventory.GroupByCategory(expired)
	report := &dto.ExpiredReportResponse{
		Date:       today.Format(dto.DateLayout),
		Count:      len(expired),
		Categories: make([]dto.CategoryReport, 0, len(groups)),
	}
	for _, g := range groups {
		for _, p := range g.Products {
			uc.log.Warn().
				Str("category", g.Category).
				Int64("product_id", p.ID).
				Str("name", p.Name).
				Str("expiration_date", dto.FormatDate(p.ExpirationDate)).
				Msg("producto vencido")
		}
		report.Categories = append(report.Categories, dto.CategoryReport{
			Category: g.Category,
			Products: toProductResponses(g.Products, today),
		})
	}
	return report, nil
}

func toProductResponses(list []*entity.Product, today time.Time) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, today))
	}
	return items
}

func toProductResponse(p *entity.Product, today time.Time) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ExpirationDate: dto.FormatDate(p.ExpirationDate),
		MarkdownDate:   dto.FormatDate(p.MarkdownDate),
		Quantity:       p.Quantity,
		Manufacturer:   p.Manufacturer,
		Brand:          p.Brand,
		Price:          p.Price,
		Category:       p.Category,
		Total:          p.Total,
		DateAdded:      p.DateAdded.Format(dto.DateLayout),
		Status:         string(inventory.Classify(p, today)),
	}
}
