package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-inventory/internal/application/authz"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
	"github.com/jhoicas/retail-inventory/pkg/jwt"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, cierre de sesión y autenticación de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	revoked  *RevocationList
	gate     *authz.Gateway
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. revoked nil → lista nueva.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, revoked *RevocationList, gate *authz.Gateway, log *logger.Logger) *AuthUseCase {
	if revoked == nil {
		revoked = NewRevocationList()
	}
	if log == nil {
		log = logger.Nop()
	}
	if gate == nil {
		gate = authz.NewGateway(log)
	}
	return &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		revoked:  revoked,
		gate:     gate,
		log:      log.Component("auth"),
		now:      time.Now,
	}
}

// UserExists indica si hay una cuenta con ese email (comparación exacta).
func (uc *AuthUseCase) UserExists(ctx context.Context, email string) (bool, error) {
	return uc.userRepo.ExistsByEmail(ctx, email)
}

// RegisterUser crea un usuario EMPLOYEE: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado. Sin password se usa el teléfono.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	exists, err := uc.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	password := in.Password
	if password == "" {
		password = in.PhoneNumber
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Password:    string(hash),
		Role:        entity.RoleEmployee,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// carrera entre ExistsByEmail e INSERT
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Str("name", user.FullName()).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto son indistinguibles (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Authenticate valida el token, descarta los revocados y recarga el usuario desde la DB
// para que el rol de la sesión sea siempre el vigente.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (access.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return access.Anonymous(), fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if uc.revoked.IsRevoked(claims.ID) {
		return access.Anonymous(), fmt.Errorf("%w: sesión cerrada", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return access.Anonymous(), err
	}
	if user == nil {
		return access.Anonymous(), fmt.Errorf("%w: usuario eliminado", domain.ErrUnauthorized)
	}
	sess := access.NewSession(user, claims.ID)
	if claims.ExpiresAt != nil {
		sess = sess.WithExpiry(claims.ExpiresAt.Time)
	}
	return sess, nil
}

// SignOut revoca el token de la sesión hasta su vencimiento.
func (uc *AuthUseCase) SignOut(sess access.Session) error {
	if !sess.Authenticated() {
		return domain.ErrUnauthorized
	}
	until := sess.ExpiresAt
	if until.IsZero() {
		until = uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	}
	uc.revoked.Revoke(sess.TokenID, until)
	uc.log.Info().Int64("user_id", sess.User.ID).Msg("sesión cerrada")
	return nil
}

// Me datos del usuario de la sesión.
func (uc *AuthUseCase) Me(sess access.Session) (*dto.UserResponse, error) {
	if err := uc.gate.Authorize(sess, access.OpUserSelf); err != nil {
		return nil, err
	}
	return toUserResponse(sess.User), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
