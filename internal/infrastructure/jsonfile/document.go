package jsonfile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// document es el esquema persistido: el documento lógico completo más los
// contadores de IDs monotónicos por entidad.
type document struct {
	entity.Snapshot
	NextID map[string]int64 `json:"next_id"`
}

func newDocument() *document {
	return &document{
		Snapshot: *entity.NewSnapshot(),
		NextID:   map[string]int64{},
	}
}

// nextID asigna el siguiente ID monotónico para la clase de entidad dada.
func (d *document) nextID(kind string) int64 {
	d.NextID[kind]++
	return d.NextID[kind]
}

// clone copia profunda vía round-trip JSON: es el mismo codec con el que el
// documento persiste, así que lo que sobrevive al clone sobrevive al disco.
func (d *document) clone() (*document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("serializar documento: %w", err)
	}
	var out document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("clonar documento: %w", err)
	}
	if out.NextID == nil {
		out.NextID = map[string]int64{}
	}
	if out.Settings == nil {
		out.Settings = map[string]string{}
	}
	return &out, nil
}

// appendChange agrega al ledger la entrada que describe una mutación, dentro
// del mismo documento borrador que será persistido con la mutación: una sola
// unidad durable para ambas cosas.
func (d *document) appendChange(entityType, action string, payload any, now time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar snapshot para ledger: %w", err)
	}
	d.PendingChanges = append(d.PendingChanges, &entity.PendingChange{
		ID:         d.nextID("pending_change"),
		EntityType: entityType,
		Action:     action,
		Payload:    raw,
		CreatedAt:  now,
	})
	return nil
}

func (d *document) findProduct(id int64) (int, *entity.Product) {
	for i, p := range d.Products {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (d *document) findSale(id int64) (int, *entity.Sale) {
	for i, s := range d.Sales {
		if s.ID == id {
			return i, s
		}
	}
	return -1, nil
}

func (d *document) findExpense(id int64) (int, *entity.Expense) {
	for i, e := range d.Expenses {
		if e.ID == id {
			return i, e
		}
	}
	return -1, nil
}

func (d *document) findUser(id int64) (int, *entity.User) {
	for i, u := range d.Users {
		if u.ID == id {
			return i, u
		}
	}
	return -1, nil
}
