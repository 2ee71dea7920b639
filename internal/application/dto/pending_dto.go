package dto

import (
	"encoding/json"
	"time"
)

// AddPendingChangeRequest entrada de ledger originada por la UI. Data es el
// snapshot completo de la entidad afectada.
type AddPendingChangeRequest struct {
	EntityType string          `json:"entity_type"`
	Action     string          `json:"action"`
	Data       json.RawMessage `json:"data"`
}

// PendingChangeResponse entrada de ledger hacia la UI.
type PendingChangeResponse struct {
	ID         int64           `json:"id"`
	EntityType string          `json:"entity_type"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
	SyncedAt   *time.Time      `json:"synced_at,omitempty"`
}

// SyncStatusResponse cuántas entradas del ledger siguen sin sincronizar.
type SyncStatusResponse struct {
	Pending int `json:"pending"`
}

// SaveSettingRequest guarda una clave de configuración.
type SaveSettingRequest struct {
	Value string `json:"value"`
}

// BackupResponse ruta del respaldo recién creado.
type BackupResponse struct {
	Path string `json:"path"`
}
