package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-local/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-local/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/infrastructure/jsonfile"
	apphttp "github.com/jhoicas/PuntoVenta-local/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

// buildTestApp arma la aplicación completa contra un store de archivo plano
// en un directorio temporal, con el admin de arranque creado.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "puntoventa.json"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     "puntoventa-test",
	})
	require.NoError(t, authUC.EnsureDefaultAdmin(context.Background()))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store.Products()),
		SaleUC:        usecase.NewSaleUseCase(store),
		ExpenseUC:     usecase.NewExpenseUseCase(store.Expenses()),
		CapitalUC:     usecase.NewCapitalUseCase(store.Capital()),
		SettingUC:     usecase.NewSettingUseCase(store.Settings()),
		PendingUC:     usecase.NewPendingChangeUseCase(store.Ledger()),
		MaintenanceUC: usecase.NewMaintenanceUseCase(store, t.TempDir()),
		DashboardUC:   analytics.NewDashboardUseCase(store),
		AuthUC:        authUC,
		SyncService:   nil, // espejo deshabilitado en tests de boundary
		JWTSecret:     testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, dto.Envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

// loginAdmin obtiene un token del admin de arranque.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: entity.DefaultAdminUsername,
		Password: auth.DefaultAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.Token
}

// dataAs re-decodifica env.Data en el tipo destino.
func dataAs[T any](t *testing.T, env dto.Envelope) T {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y sobre uniforme
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesMalas_SobreDeError(t *testing.T) {
	app := buildTestApp(t)

	resp, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: entity.DefaultAdminUsername,
		Password: "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	app := buildTestApp(t)

	resp, env := doJSON(t, app, http.MethodGet, "/api/products/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", env.Error.Code)
}

func TestUsuarios_RolStandardBloqueado(t *testing.T) {
	app := buildTestApp(t)
	adminToken := loginAdmin(t, app)

	// El admin crea un usuario standard.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/", adminToken, dto.CreateUserRequest{
		Username: "maria",
		Password: "clave123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "maria",
		Password: "clave123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	standardToken := dataAs[dto.LoginResponse](t, env).Token

	resp, env = doJSON(t, app, http.MethodGet, "/api/users/", standardToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestResetDefault_EsPublico(t *testing.T) {
	app := buildTestApp(t)

	resp, env := doJSON(t, app, http.MethodPost, "/api/auth/reset-default", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decodificación estricta
// ──────────────────────────────────────────────────────────────────────────────

func TestBody_CampoDesconocidoRechazado(t *testing.T) {
	app := buildTestApp(t)
	token := loginAdmin(t, app)

	resp, env := doJSON(t, app, http.MethodPost, "/api/products/", token, map[string]any{
		"name":      "Café",
		"precioooo": 10, // typo: no debe pasar en silencio
		"quantity":  5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Error.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de inventario y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujo_ProductoVentaDashboard(t *testing.T) {
	app := buildTestApp(t)
	token := loginAdmin(t, app)

	resp, env := doJSON(t, app, http.MethodPost, "/api/products/", token, map[string]any{
		"name":           "Filtro",
		"selling_price":  50,
		"purchase_price": 30,
		"quantity":       10,
		"min_stock":      3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := dataAs[dto.ProductResponse](t, env)

	resp, env = doJSON(t, app, http.MethodPost, "/api/sales/", token, dto.CreateSaleRequest{
		ProductID: product.ID,
		Quantity:  4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := dataAs[dto.SaleResponse](t, env)
	assert.Equal(t, "Filtro", sale.ProductName)

	// Stock insuficiente: 409 con código estable.
	resp, env = doJSON(t, app, http.MethodPost, "/api/sales/", token, dto.CreateSaleRequest{
		ProductID: product.ID,
		Quantity:  100,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)

	resp, env = doJSON(t, app, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := dataAs[dto.DashboardStatsResponse](t, env)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, "200", stats.TodaySales.String())

	// Búsqueda insensible a acentos vía query.
	resp, env = doJSON(t, app, http.MethodGet, "/api/products/?q=filtro", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := dataAs[[]dto.ProductResponse](t, env)
	require.Len(t, found, 1)
}

func TestProducto_NoEncontrado404(t *testing.T) {
	app := buildTestApp(t)
	token := loginAdmin(t, app)

	resp, env := doJSON(t, app, http.MethodGet, "/api/products/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger y sincronización
// ──────────────────────────────────────────────────────────────────────────────

func TestSync_LedgerYDrenadoSinEspejo(t *testing.T) {
	app := buildTestApp(t)
	token := loginAdmin(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/products/", token, map[string]any{
		"name":          "Café",
		"selling_price": 10,
		"quantity":      5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodGet, "/api/sync/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := dataAs[dto.SyncStatusResponse](t, env)
	assert.Equal(t, 1, status.Pending, "la mutación dejó su entrada en el ledger")

	// Sin espejo configurado el drenado se rechaza con un código claro.
	resp, env = doJSON(t, app, http.MethodPost, "/api/sync/drain", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "MIRROR_DISABLED", env.Error.Code)

	// Una entrada manual con tipo desconocido se rechaza.
	resp, env = doJSON(t, app, http.MethodPost, "/api/sync/changes", token, map[string]any{
		"entity_type": "nave",
		"action":      "create",
		"data":        map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Error.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Settings
// ──────────────────────────────────────────────────────────────────────────────

func TestSettings_GuardarYLeer(t *testing.T) {
	app := buildTestApp(t)
	token := loginAdmin(t, app)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/settings/moneda", token, dto.SaveSettingRequest{Value: "COP"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodGet, "/api/settings/moneda", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := dataAs[map[string]string](t, env)
	assert.Equal(t, "COP", got["value"])

	resp, env = doJSON(t, app, http.MethodGet, "/api/settings/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mantenimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestMantenimiento_BackupYSave(t *testing.T) {
	app := buildTestApp(t)
	token := loginAdmin(t, app)

	resp, env := doJSON(t, app, http.MethodPost, "/api/backup", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	backup := dataAs[dto.BackupResponse](t, env)
	assert.NotEmpty(t, backup.Path)
	assert.Contains(t, filepath.Base(backup.Path), "backup-")

	resp, env = doJSON(t, app, http.MethodPost, "/api/save", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}
