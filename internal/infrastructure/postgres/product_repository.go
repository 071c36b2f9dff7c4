package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Los identificadores sin comillas se guardan en minúsculas (productid, expirationdate, ...).
const productColumns = `productID, productName, description, expirationDate, markdownDate, quantity,
	manufacturer, brand, price, category, total, date_added`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q       Querier
	timeout time.Duration
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, timeout time.Duration) *ProductRepo {
	return &ProductRepo{q: q, timeout: timeout}
}

// Create persiste un producto. ID, total y date_added vuelven en la misma sentencia.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		INSERT INTO product (productName, description, expirationDate, markdownDate, quantity, manufacturer, brand, price, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING productID, total, date_added`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Description, entity.DatePtr(product.ExpirationDate), entity.DatePtr(product.MarkdownDate),
		product.Quantity, product.Manufacturer, product.Brand, product.Price, product.Category,
	).Scan(&product.ID, &product.Total, &product.DateAdded)
	return dbError("insert product", err)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM product WHERE productID = $1`, id)
}

// GetByIDForUpdate obtiene y bloquea la fila (sólo tiene efecto dentro de una tx).
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM product WHERE productID = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get product", err)
	}
	return p, nil
}

// List todos los productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM product ORDER BY productID`)
	if err != nil {
		return nil, dbError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, dbError("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list products", err)
	}
	return list, nil
}

// UpdateQuantity reemplaza el stock; total se recalcula en la base de datos.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `UPDATE product SET quantity = $2 WHERE productID = $1`, id, quantity)
	if err != nil {
		return false, dbError("update product quantity", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete elimina un producto por ID. Órdenes que lo referencian → domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `DELETE FROM product WHERE productID = $1`, id)
	if err != nil {
		return false, dbError("delete product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanProduct(row pgxScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ExpirationDate, &p.MarkdownDate, &p.Quantity,
		&p.Manufacturer, &p.Brand, &p.Price, &p.Category, &p.Total, &p.DateAdded,
	)
	if err != nil {
		return nil, err
	}
	p.ExpirationDate = entity.DatePtr(p.ExpirationDate)
	p.MarkdownDate = entity.DatePtr(p.MarkdownDate)
	return &p, nil
}
