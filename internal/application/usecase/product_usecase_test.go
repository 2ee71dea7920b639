package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/internal/infrastructure/jsonfile"
)

func testStore(t *testing.T) repository.Store {
	t.Helper()
	s, err := jsonfile.Open(filepath.Join(t.TempDir(), "puntoventa.json"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductoCreate_MinStockOmitidoTomaDefault(t *testing.T) {
	uc := usecase.NewProductUseCase(testStore(t).Products())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Café",
		SellingPrice: decimal.NewFromInt(10),
		Quantity:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMinStock, out.MinStock)
}

func TestProductoCreate_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(testStore(t).Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{SellingPrice: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, domain.ErrValidation), "name requerido")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", SellingPrice: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, domain.ErrValidation), "precio negativo rechazado")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", Quantity: -1})
	assert.True(t, errors.Is(err, domain.ErrValidation), "cantidad negativa rechazada")
}

func TestProductoUpdate_ParcialRevalida(t *testing.T) {
	uc := usecase.NewProductUseCase(testStore(t).Products())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:         "Café",
		SellingPrice: decimal.NewFromInt(10),
		Quantity:     5,
	})
	require.NoError(t, err)

	nuevoNombre := "Café Molido"
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &nuevoNombre})
	require.NoError(t, err)
	assert.Equal(t, "Café Molido", out.Name)
	assert.True(t, out.SellingPrice.Equal(decimal.NewFromInt(10)), "los campos ausentes no cambian")

	negativo := decimal.NewFromInt(-5)
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{SellingPrice: &negativo})
	assert.True(t, errors.Is(err, domain.ErrValidation), "el resultado combinado se revalida")
}

func TestProductoUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(testStore(t).Products())
	nombre := "X"
	_, err := uc.Update(context.Background(), 999, dto.UpdateProductRequest{Name: &nombre})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductoLowStock(t *testing.T) {
	uc := usecase.NewProductUseCase(testStore(t).Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Bajo", SellingPrice: decimal.NewFromInt(1), Quantity: 2, MinStock: 3})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Alto", SellingPrice: decimal.NewFromInt(1), Quantity: 20, MinStock: 3})
	require.NoError(t, err)

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Bajo", low[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaleUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_FlujoCompleto(t *testing.T) {
	store := testStore(t)
	productUC := usecase.NewProductUseCase(store.Products())
	saleUC := usecase.NewSaleUseCase(store)
	ctx := context.Background()

	p, err := productUC.Create(ctx, dto.CreateProductRequest{
		Name:          "Filtro",
		SellingPrice:  decimal.NewFromInt(50),
		PurchasePrice: decimal.NewFromInt(30),
		Quantity:      10,
	})
	require.NoError(t, err)

	sale, err := saleUC.Sell(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(200)))

	list, err := saleUC.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, saleUC.Delete(ctx, sale.ID))
	got, err := productUC.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestVenta_CantidadNoPositiva(t *testing.T) {
	saleUC := usecase.NewSaleUseCase(testStore(t))
	_, err := saleUC.Sell(context.Background(), dto.CreateSaleRequest{ProductID: 1, Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

// ──────────────────────────────────────────────────────────────────────────────
// Expense / Capital
// ──────────────────────────────────────────────────────────────────────────────

func TestGasto_MontoDebeSerPositivo(t *testing.T) {
	uc := usecase.NewExpenseUseCase(testStore(t).Expenses())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateExpenseRequest{Description: "Luz", Amount: decimal.NewFromInt(-5)})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	out, err := uc.Create(ctx, dto.CreateExpenseRequest{Description: "Luz", Amount: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.Positive(t, out.ID)
}

func TestCapital_BalanceConSigno(t *testing.T) {
	uc := usecase.NewCapitalUseCase(testStore(t).Capital())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCapitalRequest{Amount: decimal.NewFromInt(1000), Reason: "aporte"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCapitalRequest{Amount: decimal.NewFromInt(-300), Reason: "retiro"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCapitalRequest{Amount: decimal.Zero, Reason: "nada"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	balance, err := uc.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(700)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Maintenance
// ──────────────────────────────────────────────────────────────────────────────

func TestBackup_EscribeDocumentoCompleto(t *testing.T) {
	store := testStore(t)
	backupDir := t.TempDir()
	uc := usecase.NewMaintenanceUseCase(store, backupDir)
	ctx := context.Background()

	require.NoError(t, store.Settings().Set(ctx, "moneda", "COP"))

	out, err := uc.CreateBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, backupDir, filepath.Dir(out.Path))

	raw, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"moneda"`)
	assert.Contains(t, string(raw), `"products"`)

	assert.NoError(t, uc.Save(ctx))
}
