// Package jsonfile implementa el Store sobre un único documento JSON en una
// ruta fija: el modo servidor de respaldo. Se lee completo al abrir (creando
// defaults si no existe) y se reescribe completo en cada mutación vía
// escritura atómica. Contrato idéntico al backend embebido SQLite.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/pkg/atomicfile"
	"github.com/jhoicas/PuntoVenta-local/pkg/logger"
)

var _ repository.Store = (*Store)(nil)

// WriteFunc persiste el documento serializado. El default es atomicfile.Write;
// los tests inyectan fallos para verificar el rollback.
type WriteFunc func(path string, data []byte) error

// Option configura el Store al construirlo.
type Option func(*Store)

// WithWriteFunc reemplaza la función de escritura durable.
func WithWriteFunc(fn WriteFunc) Option {
	return func(s *Store) { s.write = fn }
}

// Store backend de archivo plano. Un mutex serializa todas las mutaciones
// (un solo escritor); cada mutación se aplica sobre un borrador clonado que
// primero se persiste y solo entonces reemplaza al estado en memoria, así un
// fallo de escritura deja el estado previo intacto sin rollback explícito.
type Store struct {
	path  string
	write WriteFunc
	log   *logger.Logger

	mu  sync.Mutex
	doc *document
}

// Open carga el documento desde path. Un archivo ausente inicializa defaults
// (y los persiste); un archivo presente que no parsea es ErrCorruptData: el
// arranque debe detenerse, nunca continuar con defaults silenciosos.
func Open(path string, log *logger.Logger, opts ...Option) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{path: path, write: atomicfile.Write, log: log}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := atomicfile.Read(path)
	switch {
	case errors.Is(err, atomicfile.ErrNotExist):
		s.doc = newDocument()
		if err := s.persist(s.doc); err != nil {
			return nil, fmt.Errorf("inicializar documento: %w", err)
		}
		log.Info().Str("path", path).Msg("documento nuevo inicializado")
	case err != nil:
		return nil, err
	default:
		var doc document
		if uerr := json.Unmarshal(raw, &doc); uerr != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptData, path, uerr)
		}
		if doc.NextID == nil {
			doc.NextID = map[string]int64{}
		}
		if doc.Settings == nil {
			doc.Settings = map[string]string{}
		}
		s.doc = &doc
	}
	return s, nil
}

// mutate aplica fn sobre un clon del documento, lo persiste y recién entonces
// lo adopta como estado actual (write-then-acknowledge).
func (s *Store) mutate(fn func(d *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.doc.clone()
	if err != nil {
		return err
	}
	if err := fn(draft); err != nil {
		return err
	}
	if err := s.persist(draft); err != nil {
		return err
	}
	s.doc = draft
	return nil
}

func (s *Store) persist(d *document) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar documento: %w", err)
	}
	if err := s.write(s.path, raw); err != nil {
		return fmt.Errorf("persistir documento: %w", err)
	}
	return nil
}

// read ejecuta fn con acceso de solo lectura al último estado completado.
func (s *Store) read(fn func(d *document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

func (s *Store) Products() repository.ProductRepository      { return &productRepo{s} }
func (s *Store) Sales() repository.SaleRepository            { return &saleRepo{s} }
func (s *Store) Expenses() repository.ExpenseRepository      { return &expenseRepo{s} }
func (s *Store) Capital() repository.CapitalRepository       { return &capitalRepo{s} }
func (s *Store) Settings() repository.SettingRepository      { return &settingRepo{s} }
func (s *Store) Users() repository.UserRepository            { return &userRepo{s} }
func (s *Store) Ledger() repository.PendingChangeRepository  { return &ledgerRepo{s} }

// Sell decrementa stock y crea la venta como una sola unidad durable. El
// borrador descartado ante cualquier fallo es el rollback: ni el decremento
// ni la venta se observan jamás por separado.
func (s *Store) Sell(ctx context.Context, productID int64, quantity int) (*entity.Sale, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	var created entity.Sale
	err := s.mutate(func(d *document) error {
		_, p := d.findProduct(productID)
		if p == nil {
			return domain.ErrNotFound
		}
		if quantity > p.Quantity {
			return domain.ErrInsufficientStock
		}
		now := time.Now()
		p.Quantity -= quantity
		p.UpdatedAt = now

		qty := decimal.NewFromInt(int64(quantity))
		sale := &entity.Sale{
			ID:          d.nextID("sale"),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    quantity,
			Price:       p.SellingPrice,
			Cost:        p.PurchasePrice,
			Total:       p.SellingPrice.Mul(qty),
			Profit:      p.SellingPrice.Sub(p.PurchasePrice).Mul(qty),
			CreatedAt:   now,
		}
		d.Sales = append(d.Sales, sale)

		if err := d.appendChange(entity.EntityProduct, entity.ActionUpdate, p, now); err != nil {
			return err
		}
		if err := d.appendChange(entity.EntitySale, entity.ActionCreate, sale, now); err != nil {
			return err
		}
		created = *sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteSale elimina la venta y restaura el stock del producto si aún existe
// (la referencia es débil: un producto borrado no impide eliminar la venta).
func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	return s.mutate(func(d *document) error {
		i, sale := d.findSale(id)
		if sale == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		d.Sales = append(d.Sales[:i], d.Sales[i+1:]...)
		if err := d.appendChange(entity.EntitySale, entity.ActionDelete, sale, now); err != nil {
			return err
		}
		if _, p := d.findProduct(sale.ProductID); p != nil {
			p.Quantity += sale.Quantity
			p.UpdatedAt = now
			if err := d.appendChange(entity.EntityProduct, entity.ActionUpdate, p, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// DashboardStats lectura derivada sobre el último estado completado.
func (s *Store) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		InventoryValue: decimal.Zero,
		TodaySales:     decimal.Zero,
	}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	s.read(func(d *document) {
		stats.TotalProducts = len(d.Products)
		for _, p := range d.Products {
			stats.InventoryValue = stats.InventoryValue.Add(
				p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
			if p.LowStock() {
				stats.LowStockCount++
			}
		}
		for _, sale := range d.Sales {
			if !sale.CreatedAt.Before(dayStart) && sale.CreatedAt.Before(dayEnd) {
				stats.TodaySales = stats.TodaySales.Add(sale.Total)
			}
		}
	})
	return stats, nil
}

// Snapshot serializa el documento lógico completo (sin contadores internos).
func (s *Store) Snapshot(ctx context.Context) ([]byte, error) {
	var raw []byte
	var err error
	s.read(func(d *document) {
		raw, err = json.MarshalIndent(&d.Snapshot, "", "  ")
	})
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}
	return raw, nil
}

// Flush reescribe el documento actual. Cada mutación ya es durable por sí
// misma; esto cubre la operación explícita save() del boundary.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(s.doc)
}

func (s *Store) Close() error { return nil }
