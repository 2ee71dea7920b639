package jsonfile

import (
	"context"
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
	return r.s.mutate(func(d *document) error {
		for _, u := range d.Users {
			if u.Username == user.Username {
				return fmt.Errorf("%w: username %q ya existe", domain.ErrDuplicate, user.Username)
			}
		}
		user.ID = d.nextID("user")
		user.CreatedAt = time.Now()
		cp := *user
		d.Users = append(d.Users, &cp)
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *document) {
		if _, u := d.findUser(id); u != nil {
			cp := *u
			out = &cp
		}
	})
	return out, nil
}

// GetByUsername búsqueda exacta, sensible a mayúsculas.
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *document) {
		for _, u := range d.Users {
			if u.Username == username {
				cp := *u
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *userRepo) List(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	r.s.read(func(d *document) {
		out = make([]*entity.User, 0, len(d.Users))
		for _, u := range d.Users {
			cp := *u
			out = append(out, &cp)
		}
	})
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	return r.s.mutate(func(d *document) error {
		i, existing := d.findUser(user.ID)
		if existing == nil {
			return domain.ErrNotFound
		}
		for _, u := range d.Users {
			if u.ID != user.ID && u.Username == user.Username {
				return fmt.Errorf("%w: username %q ya existe", domain.ErrDuplicate, user.Username)
			}
		}
		user.CreatedAt = existing.CreatedAt
		cp := *user
		d.Users[i] = &cp
		return nil
	})
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return r.s.mutate(func(d *document) error {
		i, existing := d.findUser(id)
		if existing == nil {
			return domain.ErrNotFound
		}
		d.Users = append(d.Users[:i], d.Users[i+1:]...)
		return nil
	})
}
