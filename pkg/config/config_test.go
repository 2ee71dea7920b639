package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-local/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "127.0.0.1:8090", cfg.HTTP.Addr())
	assert.False(t, cfg.Sheets.Enabled(), "sin credenciales el espejo queda apagado")
	assert.NotEmpty(t, cfg.Sync.DrainCron)
}

func TestLoad_BackendDesconocidoRechazado(t *testing.T) {
	t.Setenv("STORE_BACKEND", "masivo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BackendJSONDesdeEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "json")
	t.Setenv("DATA_DIR", "/tmp/pv")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "/tmp/pv/puntoventa.json", cfg.Store.JSONPath())
	assert.Equal(t, "/tmp/pv/puntoventa.db", cfg.Store.SQLitePath())
}

func TestSheets_EnabledRequiereAmbosCampos(t *testing.T) {
	c := config.SheetsConfig{CredentialsPath: "/tmp/cred.json"}
	assert.False(t, c.Enabled())
	c.SpreadsheetID = "abc123"
	assert.True(t, c.Enabled())
}
