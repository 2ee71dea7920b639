package repository

import "context"

// SettingRepository puerto de persistencia para Settings (clave → valor
// opaco, sin historial). Get devuelve ("", nil) si la clave no existe.
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	SetAll(ctx context.Context, values map[string]string) error
}
