package jsonfile_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/infrastructure/jsonfile"
	"github.com/jhoicas/PuntoVenta-local/pkg/atomicfile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func openStore(t *testing.T) (*jsonfile.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puntoventa.json")
	s, err := jsonfile.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func newProduct(name string, selling, purchase int64, qty int) *entity.Product {
	return &entity.Product{
		Name:          name,
		SellingPrice:  decimal.NewFromInt(selling),
		PurchasePrice: decimal.NewFromInt(purchase),
		Quantity:      qty,
		MinStock:      entity.DefaultMinStock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura del documento
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_ArchivoAusente_InicializaDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puntoventa.json")

	s, err := jsonfile.Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	// El documento vacío se persiste de inmediato.
	_, err = os.Stat(path)
	require.NoError(t, err, "el documento default debe escribirse al abrir")

	products, err := s.Products().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestOpen_ArchivoCorrupto_RetornaErrCorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puntoventa.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o644))

	_, err := jsonfile.Open(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCorruptData),
		"un archivo presente pero ilegible es dato corrupto, no defaults silenciosos")
}

func TestOpen_ReapurturaConservaEstado(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puntoventa.json")
	ctx := context.Background()

	s1, err := jsonfile.Open(path, nil)
	require.NoError(t, err)
	p := newProduct("Café", 10, 6, 5)
	require.NoError(t, s1.Products().Create(ctx, p))
	s1.Close()

	s2, err := jsonfile.Open(path, nil)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Café", got.Name)
	assert.True(t, got.SellingPrice.Equal(decimal.NewFromInt(10)))

	// Los IDs siguen siendo monotónicos tras reabrir.
	p2 := newProduct("Azúcar", 4, 2, 8)
	require.NoError(t, s2.Products().Create(ctx, p2))
	assert.Greater(t, p2.ID, p.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_CreateAsignaIDyTiempos(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Café", 10, 6, 5)
	require.NoError(t, s.Products().Create(ctx, p))

	assert.Equal(t, int64(1), p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestProductos_BarcodeDuplicado_RetornaErrDuplicate(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p1 := newProduct("Café", 10, 6, 5)
	p1.Barcode = "750100"
	require.NoError(t, s.Products().Create(ctx, p1))

	p2 := newProduct("Otro café", 12, 7, 3)
	p2.Barcode = "750100"
	err := s.Products().Create(ctx, p2)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// Barcode vacío no cuenta para unicidad: varios productos sin código.
	p3 := newProduct("Sin código A", 1, 1, 1)
	p4 := newProduct("Sin código B", 1, 1, 1)
	require.NoError(t, s.Products().Create(ctx, p3))
	require.NoError(t, s.Products().Create(ctx, p4))
}

func TestProductos_Search_InsensibleAAcentos(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	cafe := newProduct("Café Molido", 10, 6, 5)
	cafe.Category = "Bebidas"
	azucar := newProduct("Azúcar", 4, 2, 8)
	require.NoError(t, s.Products().Create(ctx, cafe))
	require.NoError(t, s.Products().Create(ctx, azucar))

	got, err := s.Products().Search(ctx, "cafe")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café Molido", got[0].Name)

	got, err = s.Products().Search(ctx, "AZÚCAR")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Azúcar", got[0].Name)

	// También matchea por categoría.
	got, err = s.Products().Search(ctx, "bebidas")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = s.Products().Search(ctx, "no-existe")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductos_GetInexistente_RetornaNilNil(t *testing.T) {
	s, _ := openStore(t)

	got, err := s.Products().GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sell / DeleteSale
// ──────────────────────────────────────────────────────────────────────────────

func TestSell_DecrementaStockYCreaVentaConSnapshot(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))

	sale, err := s.Sell(ctx, p.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, "Filtro", sale.ProductName)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(200)), "total = 50×4")
	assert.True(t, sale.Profit.Equal(decimal.NewFromInt(80)), "profit = (50-30)×4")

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
}

func TestSell_StockInsuficiente_NoMutaNada(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 3)
	require.NoError(t, s.Products().Create(ctx, p))

	_, err := s.Sell(ctx, p.ID, 4)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity, "el stock no debe tocarse")

	sales, err := s.Sales().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSell_ProductoInexistente(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Sell(context.Background(), 42, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSell_CantidadInvalida(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Sell(context.Background(), 1, 0)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSell_VentaSobreviveBorradoDelProducto(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))
	sale, err := s.Sell(ctx, p.ID, 2)
	require.NoError(t, err)

	require.NoError(t, s.Products().Delete(ctx, p.ID))

	got, err := s.Sales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Filtro", got.ProductName, "el snapshot sobrevive al borrado del producto")
}

func TestDeleteSale_RestauraStock(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))
	sale, err := s.Sell(ctx, p.ID, 4)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSale(ctx, sale.ID))

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "el stock vuelve al valor previo a la venta")

	gone, err := s.Sales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteSale_ProductoYaBorrado_NoFalla(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))
	sale, err := s.Sell(ctx, p.ID, 4)
	require.NoError(t, err)
	require.NoError(t, s.Products().Delete(ctx, p.ID))

	// La referencia es débil: borrar la venta no exige que el producto siga.
	assert.NoError(t, s.DeleteSale(ctx, sale.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollback ante fallo de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestMutacion_FalloDeEscritura_NoCambiaEstado(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puntoventa.json")
	ctx := context.Background()

	failing := false
	s, err := jsonfile.Open(path, nil, jsonfile.WithWriteFunc(func(p string, data []byte) error {
		if failing {
			return fmt.Errorf("disco lleno simulado")
		}
		return atomicfile.Write(p, data)
	}))
	require.NoError(t, err)
	defer s.Close()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))

	failing = true
	_, err = s.Sell(ctx, p.ID, 4)
	require.Error(t, err)

	failing = false
	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "el decremento tentativo debe revertirse")

	sales, err := s.Sales().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales, "la venta no debe observarse si la escritura falló")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_MutacionesDejanEntradas(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))
	_, err := s.Sell(ctx, p.ID, 1)
	require.NoError(t, err)

	pending, err := s.Ledger().Pending(ctx)
	require.NoError(t, err)
	// create producto + (update producto + create venta) de la venta.
	require.Len(t, pending, 3)
	assert.Equal(t, entity.EntityProduct, pending[0].EntityType)
	assert.Equal(t, entity.ActionCreate, pending[0].Action)
	assert.NotEmpty(t, pending[0].Payload, "cada entrada carga el snapshot completo")

	for i := 1; i < len(pending); i++ {
		assert.False(t, pending[i].CreatedAt.Before(pending[i-1].CreatedAt),
			"las pendientes van de más antigua a más reciente")
	}
}

func TestLedger_MarkSyncedRetiraDePendientes(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Products().Create(ctx, newProduct("A", 1, 1, 1)))
	require.NoError(t, s.Products().Create(ctx, newProduct("B", 1, 1, 1)))

	pending, err := s.Ledger().Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, s.Ledger().MarkSynced(ctx, []int64{pending[0].ID}))

	rest, err := s.Ledger().Pending(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, pending[1].ID, rest[0].ID)
}

func TestLedger_ClearMarcaTodo(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Products().Create(ctx, newProduct("A", 1, 1, 1)))
	require.NoError(t, s.Ledger().Clear(ctx))

	pending, err := s.Ledger().Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLedger_AppendValidaTipoYAccion(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	err := s.Ledger().Append(ctx, &entity.PendingChange{EntityType: "nave", Action: entity.ActionCreate})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	err = s.Ledger().Append(ctx, &entity.PendingChange{EntityType: entity.EntityProduct, Action: "explotar"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_EjemploVentaDeHoy(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 10)
	require.NoError(t, s.Products().Create(ctx, p))
	_, err := s.Sell(ctx, p.ID, 4)
	require.NoError(t, err)

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 0, stats.LowStockCount, "quedan 6 unidades, sobre el mínimo de 3")
	assert.True(t, stats.TodaySales.Equal(decimal.NewFromInt(200)), "hoy se vendieron 50×4")
	assert.True(t, stats.InventoryValue.Equal(decimal.NewFromInt(300)), "inventario = 50×6")
}

func TestDashboard_StockBajoSinVentas(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	p := newProduct("Filtro", 50, 30, 2) // quantity 2 ≤ minStock 3
	require.NoError(t, s.Products().Create(ctx, p))

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.True(t, stats.TodaySales.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Settings / Snapshot
// ──────────────────────────────────────────────────────────────────────────────

func TestSettings_SetGetYLedger(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Settings().Set(ctx, "moneda", "COP"))
	got, err := s.Settings().Get(ctx, "moneda")
	require.NoError(t, err)
	assert.Equal(t, "COP", got)

	// Clave ausente: valor cero sin error, el caso de uso decide.
	got, err = s.Settings().Get(ctx, "no-existe")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, s.Settings().Set(ctx, "moneda", "USD"))
	pending, err := s.Ledger().Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, entity.ActionCreate, pending[0].Action)
	assert.Equal(t, entity.ActionUpdate, pending[1].Action)
}

func TestSnapshot_EsDocumentoLogicoCompleto(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Products().Create(ctx, newProduct("Filtro", 50, 30, 10)))
	require.NoError(t, s.Settings().Set(ctx, "moneda", "COP"))

	raw, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"products"`)
	assert.Contains(t, string(raw), `"settings"`)
	assert.Contains(t, string(raw), `"pending_changes"`)
	assert.NotContains(t, string(raw), "next_id", "los contadores internos no forman parte del snapshot")
}
