package usecase

import (
	"context"
	"errors"
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

// StoreUseCase registro de tiendas. Alta, edición y baja sólo ADMIN.
type StoreUseCase struct {
	repo        repository.StoreRepository
	ids         identifier.Generator
	maxAttempts int
	gate        *authz.Gateway
	log         *logger.Logger
}

// NewStoreUseCase construye el caso de uso. maxAttempts < 1 usa identifier.DefaultMaxAttempts.
func NewStoreUseCase(repo repository.StoreRepository, ids identifier.Generator, maxAttempts int, gate *authz.Gateway, log *logger.Logger) *StoreUseCase {
	if maxAttempts < 1 {
		maxAttempts = identifier.DefaultMaxAttempts
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StoreUseCase{repo: repo, ids: ids, maxAttempts: maxAttempts, gate: gate, log: log.Component("stores")}
}

// Create da de alta una tienda con id de 5 dígitos generado.
func (uc *StoreUseCase) Create(ctx context.Context, sess access.Session, in dto.StoreRequest) (*dto.StoreResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpStoreCreate); err != nil {
		return nil, err
	}
	store, err := storeFromRequest(in)
	if err != nil {
		return nil, err
	}
	// una violación de unicidad en el INSERT (carrera) consume un intento más
	var lastErr error
	for attempt := 0; attempt < uc.maxAttempts; attempt++ {
		id, err := identifier.Unique(ctx, uc.ids.StoreID, uc.repo.Exists, uc.maxAttempts, func(int) {
			metrics.ObserveCollision("store_id")
		})
		if err != nil {
			return nil, err
		}
		store.ID = id
		lastErr = uc.repo.Create(ctx, store)
		if lastErr == nil {
			uc.log.Info().Int("store_id", store.ID).Str("name", store.Name).Msg("tienda creada")
			return toStoreResponse(store), nil
		}
		if !errors.Is(lastErr, domain.ErrDuplicate) {
			return nil, lastErr
		}
		metrics.ObserveCollision("store_id")
	}
	return nil, errors.Join(domain.ErrExhaustedRetries, lastErr)
}

// GetByID obtiene una tienda.
func (uc *StoreUseCase) GetByID(ctx context.Context, sess access.Session, id int) (*dto.StoreResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpStoreView); err != nil {
		return nil, err
	}
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}
	return toStoreResponse(store), nil
}

// List todas las tiendas.
func (uc *StoreUseCase) List(ctx context.Context, sess access.Session) ([]dto.StoreResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpStoreView); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// Update reemplaza todos los campos de la tienda id. opening_date vacío no la modifica.
func (uc *StoreUseCase) Update(ctx context.Context, sess access.Session, id int, in dto.StoreRequest) (*dto.StoreResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpStoreUpdate); err != nil {
		return nil, err
	}
	store, err := storeFromRequest(in)
	if err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrStoreNotFound
	}
	// sin opening_date se conserva la fecha de apertura registrada
	if in.OpeningDate == "" {
		store.OpeningDate = current.OpeningDate
	}
	store.ID = id
	ok, err := uc.repo.Update(ctx, store)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	return toStoreResponse(store), nil
}

// Delete elimina una tienda.
func (uc *StoreUseCase) Delete(ctx context.Context, sess access.Session, id int) error {
	if err := uc.gate.Authorize(sess, access.OpStoreDelete); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrStoreNotFound
	}
	uc.log.Info().Int("store_id", id).Msg("tienda eliminada")
	return nil
}

func storeFromRequest(in dto.StoreRequest) (*entity.Store, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	opening, err := dto.ParseDate("opening_date", in.OpeningDate)
	if err != nil {
		return nil, err
	}
	date := entity.Date(time.Now())
	if opening != nil {
		date = *opening
	}
	return &entity.Store{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Zip:         in.Zip,
		Phone:       in.Phone,
		StoreType:   in.StoreType,
		OpeningDate: date,
	}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Zip:         s.Zip,
		Phone:       s.Phone,
		StoreType:   s.StoreType,
		OpeningDate: s.OpeningDate.Format(dto.DateLayout),
	}
}
