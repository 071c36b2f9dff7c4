package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `user_id, first_name, last_name, phone_number, email, password, role`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q       Querier
	timeout time.Duration
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier, timeout time.Duration) *UserRepo {
	return &UserRepo{q: q, timeout: timeout}
}

// Create persiste un usuario y asigna el ID generado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		INSERT INTO users (first_name, last_name, phone_number, email, password, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id`
	err := r.q.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.PhoneNumber, user.Email, user.Password, string(user.Role),
	).Scan(&user.ID)
	return dbError("insert user", err)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get user", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (comparación exacta).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get user by email", err)
	}
	return u, nil
}

// ExistsByEmail indica si hay un usuario con ese email.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, dbError("user exists", err)
	}
	return exists, nil
}

// List todos los usuarios ordenados por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, dbError("list users", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbError("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list users", err)
	}
	return list, nil
}

// UpdateRole cambia el rol del usuario con ese email.
func (r *UserRepo) UpdateRole(ctx context.Context, email string, role entity.Role) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `UPDATE users SET role = $2 WHERE email = $1`, email, string(role))
	if err != nil {
		return false, dbError("update user role", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteByEmail elimina el usuario con ese email.
func (r *UserRepo) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return false, dbError("delete user", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.Email, &u.Password, &role); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
