package entity

import (
	"encoding/json"
	"time"
)

// Tipos de entidad que el ledger de cambios pendientes registra.
const (
	EntityProduct = "product"
	EntitySale    = "sale"
	EntityExpense = "expense"
	EntityCapital = "capital_transaction"
	EntitySetting = "setting"
)

// Acciones registrables en el ledger.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// PendingChange entrada del ledger de cambios pendientes de sincronizar con
// el espejo remoto. Append-only: nunca se muta salvo para estampar SyncedAt.
// Payload es el snapshot completo de la entidad, de modo que el replay no
// depende del estado actual del store.
type PendingChange struct {
	ID         int64           `json:"id"`
	EntityType string          `json:"entity_type"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
	SyncedAt   *time.Time      `json:"synced_at,omitempty"`
}

// ValidEntityType verifica que el tipo de entidad sea uno de los conocidos.
func ValidEntityType(t string) bool {
	switch t {
	case EntityProduct, EntitySale, EntityExpense, EntityCapital, EntitySetting:
		return true
	}
	return false
}

// ValidAction verifica que la acción sea create, update o delete.
func ValidAction(a string) bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
