package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.SettingRepository = (*settingRepo)(nil)

type settingRepo struct {
	s *Store
}

type settingSnapshot struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *settingRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

func (r *settingRepo) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		return setOne(ctx, tx, key, value, time.Now())
	})
}

// SetAll guarda el mapa completo en una sola transacción.
func (r *settingRepo) SetAll(ctx context.Context, values map[string]string) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		for k, v := range values {
			if err := setOne(ctx, tx, k, v, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func setOne(ctx context.Context, tx *sql.Tx, key, value string, now time.Time) error {
	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM settings WHERE key = ?`, key,
	).Scan(&exists); err != nil {
		return fmt.Errorf("verificar setting: %w", err)
	}
	action := entity.ActionCreate
	if exists > 0 {
		action = entity.ActionUpdate
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return appendChangeTx(ctx, tx, entity.EntitySetting, action, settingSnapshot{Key: key, Value: value}, now)
}
