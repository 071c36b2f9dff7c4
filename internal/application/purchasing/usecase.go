package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/retail-inventory/internal/application/authz"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/identifier"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
	"github.com/jhoicas/retail-inventory/pkg/logger"
	"github.com/jhoicas/retail-inventory/pkg/metrics"
)

// OrderUseCase flujo de órdenes de compra. Crear una orden no modifica el stock del producto.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
	ids         identifier.Generator
	sheets      SheetRenderer
	maxAttempts int
	gate        *authz.Gateway
	log         *logger.Logger
	now         func() time.Time
}

// Config dependencias opcionales del caso de uso.
type Config struct {
	MaxAttempts int           // intentos por identificador; < 1 usa identifier.DefaultMaxAttempts
	Sheets      SheetRenderer // nil deshabilita OrderSheet
	Now         func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	ids identifier.Generator,
	gate *authz.Gateway,
	log *logger.Logger,
	cfg Config,
) *OrderUseCase {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = identifier.DefaultMaxAttempts
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		ids:         ids,
		sheets:      cfg.Sheets,
		maxAttempts: cfg.MaxAttempts,
		gate:        gate,
		log:         log.Component("purchasing"),
		now:         cfg.Now,
	}
}

// Create registra una orden para productID. En una misma transacción bloquea el producto,
// genera número de orden y de guía únicos e inserta con fecha de hoy.
// Producto inexistente → ErrProductNotFound sin escribir nada.
func (uc *OrderUseCase) Create(ctx context.Context, sess access.Session, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpPurchaseOrderCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var order *entity.PurchaseOrder
	var lastErr error
	for attempt := 0; attempt < uc.maxAttempts; attempt++ {
		// una violación de unicidad aborta la tx en Postgres: se reintenta la transacción completa
		lastErr = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, orderRepo repository.PurchaseOrderRepository) error {
			product, err := productRepo.GetByIDForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			po, err := identifier.Unique(ctx, uc.ids.PONumber, orderRepo.ExistsPONumber, uc.maxAttempts, func(int) {
				metrics.ObserveCollision("po_number")
			})
			if err != nil {
				return err
			}
			tracking, err := identifier.Unique(ctx, uc.ids.TrackingNumber, orderRepo.ExistsTrackingNumber, uc.maxAttempts, func(string) {
				metrics.ObserveCollision("tracking_number")
			})
			if err != nil {
				return err
			}
			o := &entity.PurchaseOrder{
				PONumber:       po,
				ProductID:      product.ID,
				Quantity:       in.Quantity,
				OrderDate:      entity.Date(uc.now()),
				TrackingNumber: tracking,
			}
			if err := orderRepo.Create(ctx, o); err != nil {
				return err
			}
			order = o
			return nil
		})
		if lastErr == nil {
			uc.log.Info().
				Int("po_number", order.PONumber).
				Str("tracking_number", order.TrackingNumber).
				Int64("product_id", order.ProductID).
				Int("quantity", order.Quantity).
				Msg("orden de compra creada")
			return toOrderResponse(order), nil
		}
		if !errors.Is(lastErr, domain.ErrDuplicate) {
			return nil, lastErr
		}
		metrics.ObserveCollision("purchase_order_insert")
	}
	return nil, errors.Join(domain.ErrExhaustedRetries, lastErr)
}

// Update aplica los campos presentes del parche. Parche vacío → orden sin cambios.
func (uc *OrderUseCase) Update(ctx context.Context, sess access.Session, poNumber int, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpPurchaseOrderUpdate); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, orderRepo repository.PurchaseOrderRepository) error {
		current, err := orderRepo.GetByPONumber(ctx, poNumber)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrOrderNotFound
		}
		order = current
		if in.Empty() {
			return nil
		}
		if in.ProductID != nil {
			product, err := productRepo.GetByIDForUpdate(ctx, *in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			current.ProductID = product.ID
		}
		if in.Quantity != nil {
			if *in.Quantity <= 0 {
				return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
			}
			current.Quantity = *in.Quantity
		}
		if in.OrderDate != nil {
			d, err := dto.ParseDate("order_date", *in.OrderDate)
			if err != nil {
				return err
			}
			if d == nil {
				return fmt.Errorf("%w: order_date vacío", domain.ErrInvalidInput)
			}
			current.OrderDate = entity.Date(*d)
		}
		if in.TrackingNumber != nil {
			current.TrackingNumber = *in.TrackingNumber
		}
		ok, err := orderRepo.Update(ctx, current)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina una orden.
func (uc *OrderUseCase) Delete(ctx context.Context, sess access.Session, poNumber int) error {
	if err := uc.gate.Authorize(sess, access.OpPurchaseOrderDelete); err != nil {
		return err
	}
	ok, err := uc.orderRepo.Delete(ctx, poNumber)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOrderNotFound
	}
	uc.log.Info().Int("po_number", poNumber).Msg("orden de compra eliminada")
	return nil
}

// GetByPONumber obtiene una orden.
func (uc *OrderUseCase) GetByPONumber(ctx context.Context, sess access.Session, poNumber int) (*dto.PurchaseOrderResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpPurchaseOrderView); err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByPONumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}

// List todas las órdenes.
func (uc *OrderUseCase) List(ctx context.Context, sess access.Session) ([]dto.PurchaseOrderResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpPurchaseOrderView); err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Sheet genera el PDF de la orden poNumber.
func (uc *OrderUseCase) Sheet(ctx context.Context, sess access.Session, poNumber int) ([]byte, error) {
	if err := uc.gate.Authorize(sess, access.OpPurchaseOrderView); err != nil {
		return nil, err
	}
	if uc.sheets == nil {
		return nil, fmt.Errorf("%w: generador de PDF no configurado", domain.ErrConfiguration)
	}
	order, err := uc.orderRepo.GetByPONumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.sheets.PurchaseOrderSheet(order, product)
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		PONumber:       o.PONumber,
		ProductID:      o.ProductID,
		Quantity:       o.Quantity,
		OrderDate:      o.OrderDate.Format(dto.DateLayout),
		TrackingNumber: o.TrackingNumber,
	}
}
