package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de almacenamiento soportados.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Store  StoreConfig
	JWT    JWTConfig
	Sheets SheetsConfig
	Sync   SyncConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// HTTPConfig configuración del servidor HTTP local (el boundary que consume
// el proceso de UI).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig configuración del almacenamiento local.
// Backend elige entre el store embebido SQLite y el archivo plano JSON
// (modo servidor de respaldo); ambos presentan el mismo contrato.
type StoreConfig struct {
	Backend   string // sqlite | json
	DataDir   string
	BackupDir string
}

// SQLitePath ruta del archivo de datos del backend embebido.
func (c StoreConfig) SQLitePath() string {
	return filepath.Join(c.DataDir, "puntoventa.db")
}

// JSONPath ruta fija del documento del backend de archivo plano.
func (c StoreConfig) JSONPath() string {
	return filepath.Join(c.DataDir, "puntoventa.json")
}

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SheetsConfig credenciales y destino del espejo remoto en Google Sheets.
// Se entregan fuera de banda; con CredentialsPath o SpreadsheetID vacíos el
// espejo queda deshabilitado y el ledger solo acumula.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string // hoja!rango destino de los appends
}

// Enabled indica si hay credenciales suficientes para sincronizar.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// SyncConfig expresiones cron para el drenado del ledger y los respaldos.
type SyncConfig struct {
	DrainCron  string
	BackupCron string
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo .env o config.env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "puntoventa-local"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		Store: StoreConfig{
			Backend:   getString(v, "STORE_BACKEND", BackendSQLite),
			DataDir:   getString(v, "DATA_DIR", "./data"),
			BackupDir: getString(v, "BACKUP_DIR", "./data/backups"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 12*60),
			Issuer:     getString(v, "JWT_ISSUER", "puntoventa-local"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: getString(v, "SHEETS_CREDENTIALS_PATH", ""),
			SpreadsheetID:   getString(v, "SHEETS_SPREADSHEET_ID", ""),
			Range:           getString(v, "SHEETS_RANGE", "Cambios!A:E"),
		},
		Sync: SyncConfig{
			DrainCron:  getString(v, "SYNC_CRON", "*/5 * * * *"),
			BackupCron: getString(v, "BACKUP_CRON", "0 2 * * *"),
		},
	}

	if cfg.Store.Backend != BackendSQLite && cfg.Store.Backend != BackendJSON {
		return nil, fmt.Errorf("STORE_BACKEND desconocido: %q", cfg.Store.Backend)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
