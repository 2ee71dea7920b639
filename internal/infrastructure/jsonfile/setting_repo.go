package jsonfile

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.SettingRepository = (*settingRepo)(nil)

type settingRepo struct {
	s *Store
}

// settingSnapshot payload que viaja al ledger por cada setting mutado.
type settingSnapshot struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *settingRepo) Get(ctx context.Context, key string) (string, error) {
	var out string
	r.s.read(func(d *document) {
		out = d.Settings[key]
	})
	return out, nil
}

func (r *settingRepo) GetAll(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	r.s.read(func(d *document) {
		for k, v := range d.Settings {
			out[k] = v
		}
	})
	return out, nil
}

func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	return r.s.mutate(func(d *document) error {
		action := entity.ActionCreate
		if _, ok := d.Settings[key]; ok {
			action = entity.ActionUpdate
		}
		d.Settings[key] = value
		return d.appendChange(entity.EntitySetting, action, settingSnapshot{Key: key, Value: value}, time.Now())
	})
}

// SetAll guarda el mapa completo como una sola unidad durable, con una
// entrada de ledger por clave.
func (r *settingRepo) SetAll(ctx context.Context, values map[string]string) error {
	return r.s.mutate(func(d *document) error {
		now := time.Now()
		for k, v := range values {
			action := entity.ActionCreate
			if _, ok := d.Settings[k]; ok {
				action = entity.ActionUpdate
			}
			d.Settings[k] = v
			if err := d.appendChange(entity.EntitySetting, action, settingSnapshot{Key: k, Value: v}, now); err != nil {
				return err
			}
		}
		return nil
	})
}
