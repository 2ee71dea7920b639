package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword contraseña inicial del usuario admin de arranque.
// Se espera que el administrador la cambie tras el primer login.
const DefaultAdminPassword = "admin123"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y administración de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Toda falla (usuario inexistente, inactivo o password incorrecto) devuelve
// el mismo domain.ErrUnauthorized para no filtrar qué parte falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	now := time.Now()
	user.LastLogin = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// CurrentUser retorna el usuario saneado asociado a la sesión.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// CreateUser crea un usuario: valida rol, hashea password y persiste.
// Devuelve ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username requerido", domain.ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password requerido", domain.ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStandard
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol inválido %q", domain.ErrValidation, in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		IsActive:     active,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateUser actualización parcial: solo los campos presentes cambian.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Username != nil {
		if *in.Username == "" {
			return nil, fmt.Errorf("%w: username requerido", domain.ErrValidation)
		}
		user.Username = *in.Username
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password requerido", domain.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol inválido %q", domain.ErrValidation, *in.Role)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteUser elimina un usuario. El admin de arranque no puede eliminarse.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Username == entity.DefaultAdminUsername {
		return fmt.Errorf("%w: el usuario %s no puede eliminarse", domain.ErrForbidden, entity.DefaultAdminUsername)
	}
	return uc.userRepo.Delete(ctx, id)
}

// ListUsers retorna todos los usuarios saneados.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// ResetDefaultUser restaura el usuario admin de arranque a su estado inicial:
// password por defecto, rol admin y activo. Lo crea si no existe.
func (uc *AuthUseCase) ResetDefaultUser(ctx context.Context) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, entity.DefaultAdminUsername)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Username:     entity.DefaultAdminUsername,
			PasswordHash: string(hash),
			FullName:     "Administrador",
			Role:         entity.RoleAdmin,
			IsActive:     true,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return toUserResponse(user), nil
	}
	user.PasswordHash = string(hash)
	user.Role = entity.RoleAdmin
	user.IsActive = true
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureDefaultAdmin garantiza que exista el admin de arranque. Es idempotente:
// si ya existe no lo toca, aunque su password haya cambiado.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context) error {
	user, err := uc.userRepo.GetByUsername(ctx, entity.DefaultAdminUsername)
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.Create(ctx, &entity.User{
		Username:     entity.DefaultAdminUsername,
		PasswordHash: string(hash),
		FullName:     "Administrador",
		Role:         entity.RoleAdmin,
		IsActive:     true,
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
