package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		user.CreatedAt = time.Now()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, password_hash, full_name, role, is_active, last_login, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user.Username, user.PasswordHash, user.FullName, user.Role,
			boolToInt(user.IsActive), nullTime(user.LastLogin), fmtTime(user.CreatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: username %q ya existe", domain.ErrDuplicate, user.Username)
			}
			return fmt.Errorf("insert user: %w", err)
		}
		if user.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("id de usuario: %w", err)
		}
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.s.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
}

// GetByUsername búsqueda exacta, sensible a mayúsculas (BINARY por defecto
// en comparación de TEXT).
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.s.db.QueryRowContext(ctx, selectUser+` WHERE username = ?`, username))
}

func (r *userRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.s.db.QueryContext(ctx, selectUser+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		existing, err := scanUser(tx.QueryRowContext(ctx, selectUser+` WHERE id = ?`, user.ID))
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		user.CreatedAt = existing.CreatedAt
		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET username = ?, password_hash = ?, full_name = ?, role = ?, is_active = ?, last_login = ?
			WHERE id = ?`,
			user.Username, user.PasswordHash, user.FullName, user.Role,
			boolToInt(user.IsActive), nullTime(user.LastLogin), user.ID,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: username %q ya existe", domain.ErrDuplicate, user.Username)
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}
