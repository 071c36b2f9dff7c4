package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-inventory/internal/application/authz"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

// UserUseCase administración de usuarios y roles (sólo ADMIN).
type UserUseCase struct {
	repo repository.UserRepository
	gate *authz.Gateway
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, gate *authz.Gateway, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, gate: gate, log: log.Component("users")}
}

// List todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context, sess access.Session) ([]dto.UserResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpUserList); err != nil {
		return nil, err
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// GetByEmail obtiene un usuario por email.
func (uc *UserUseCase) GetByEmail(ctx context.Context, sess access.Session, email string) (*dto.UserResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpUserList); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// DeleteByEmail elimina la cuenta con ese email.
func (uc *UserUseCase) DeleteByEmail(ctx context.Context, sess access.Session, email string) error {
	if err := uc.gate.Authorize(sess, access.OpUserDelete); err != nil {
		return err
	}
	ok, err := uc.repo.DeleteByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	uc.log.Info().Str("email", email).Int64("by", sess.User.ID).Msg("usuario eliminado")
	return nil
}

// ChangeRole asigna role al usuario con ese email.
func (uc *UserUseCase) ChangeRole(ctx context.Context, sess access.Session, email string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpUserChangeRole); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return uc.setRole(ctx, sess, email, role)
}

// GrantManager promueve a MANAGER. ErrConflict si ya lo es.
func (uc *UserUseCase) GrantManager(ctx context.Context, sess access.Session, email string) (*dto.UserResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpUserGrantManager); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == entity.RoleManager {
		return nil, fmt.Errorf("%s ya es MANAGER: %w", email, domain.ErrConflict)
	}
	return uc.setRole(ctx, sess, email, entity.RoleManager)
}

func (uc *UserUseCase) setRole(ctx context.Context, sess access.Session, email string, role entity.Role) (*dto.UserResponse, error) {
	ok, err := uc.repo.UpdateRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	uc.log.Info().Str("email", email).Str("role", role.String()).Int64("by", sess.User.ID).Msg("rol actualizado")
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role.String(),
	}
}
