package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `store_id, store_name, address, city, state, zip, phone, store_type, opening_date`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q       Querier
	timeout time.Duration
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier, timeout time.Duration) *StoreRepo {
	return &StoreRepo{q: q, timeout: timeout}
}

// Create inserta la tienda con su ID ya generado.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.q.Exec(ctx, `
		INSERT INTO stores (store_id, store_name, address, city, state, zip, phone, store_type, opening_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Address, s.City, s.State, s.Zip, s.Phone, s.StoreType, entity.Date(s.OpeningDate),
	)
	return dbError("insert store", err)
}

// GetByID obtiene una tienda.
func (r *StoreRepo) GetByID(ctx context.Context, id int) (*entity.Store, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE store_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get store", err)
	}
	return s, nil
}

// Exists indica si el ID de tienda ya está tomado.
func (r *StoreRepo) Exists(ctx context.Context, id int) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE store_id = $1)`, id).Scan(&exists); err != nil {
		return false, dbError("store exists", err)
	}
	return exists, nil
}

// List todas las tiendas por ID.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY store_id`)
	if err != nil {
		return nil, dbError("list stores", err)
	}
	defer rows.Close()
	list := make([]*entity.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, dbError("scan store", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list stores", err)
	}
	return list, nil
}

// Update reemplaza todos los campos de la tienda.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `
		UPDATE stores SET store_name = $2, address = $3, city = $4, state = $5, zip = $6,
			phone = $7, store_type = $8, opening_date = $9
		WHERE store_id = $1`,
		s.ID, s.Name, s.Address, s.City, s.State, s.Zip, s.Phone, s.StoreType, entity.Date(s.OpeningDate),
	)
	if err != nil {
		return false, dbError("update store", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete elimina una tienda.
func (r *StoreRepo) Delete(ctx context.Context, id int) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `DELETE FROM stores WHERE store_id = $1`, id)
	if err != nil {
		return false, dbError("delete store", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanStore(row pgxScanner) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.Zip, &s.Phone, &s.StoreType, &s.OpeningDate); err != nil {
		return nil, err
	}
	s.OpeningDate = entity.Date(s.OpeningDate)
	return &s, nil
}
