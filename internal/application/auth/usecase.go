package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	tx     ports.TxRunner
	jwtCfg JWTConfig
}

// New construye el caso de uso de auth.
func New(tx ports.TxRunner, jwtCfg JWTConfig) *UseCase {
	return &UseCase{tx: tx, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea la contraseña con bcrypt y persiste.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterUserRequest) (*entity.User, error) {
	if in.Username == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	switch role {
	case entity.RoleAdmin, entity.RoleVendedor, entity.RoleCobrador, entity.RoleCajero:
	default:
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r *ports.Repos) error {
		existing, err := r.Users.GetByUsername(in.Username)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return r.Users.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica usuario/contraseña, genera el JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		var err error
		user, err = r.Users.GetByUsername(in.Username)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(jwt.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, uc.jwtCfg.Secret, uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
