package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// SettingUseCase casos de uso de configuración clave → valor de la tienda.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// Get lee una clave; clave inexistente es domain.ErrNotFound.
func (uc *SettingUseCase) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: key requerida", domain.ErrValidation)
	}
	all, err := uc.repo.GetAll(ctx)
	if err != nil {
		return "", err
	}
	value, ok := all[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

// GetAll lee todas las claves.
func (uc *SettingUseCase) GetAll(ctx context.Context) (map[string]string, error) {
	return uc.repo.GetAll(ctx)
}

// Set guarda una clave (crea o sobrescribe).
func (uc *SettingUseCase) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: key requerida", domain.ErrValidation)
	}
	return uc.repo.Set(ctx, key, value)
}

// SetAll guarda varias claves de una vez.
func (uc *SettingUseCase) SetAll(ctx context.Context, values map[string]string) error {
	for key := range values {
		if key == "" {
			return fmt.Errorf("%w: key requerida", domain.ErrValidation)
		}
	}
	return uc.repo.SetAll(ctx, values)
}
