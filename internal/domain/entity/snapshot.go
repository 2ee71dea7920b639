package entity

// Snapshot documento lógico completo del store: es el esquema que persiste el
// backend de archivo plano, el formato de los respaldos y lo que produce
// Store.Snapshot en ambos backends.
type Snapshot struct {
	Products       []*Product            `json:"products"`
	Sales          []*Sale               `json:"sales"`
	Expenses       []*Expense            `json:"expenses"`
	Capital        []*CapitalTransaction `json:"capital_transactions"`
	Settings       map[string]string     `json:"settings"`
	PendingChanges []*PendingChange      `json:"pending_changes"`
	Users          []*User               `json:"users"`
}

// NewSnapshot crea un documento vacío con todas las colecciones inicializadas.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Products:       []*Product{},
		Sales:          []*Sale{},
		Expenses:       []*Expense{},
		Capital:        []*CapitalTransaction{},
		Settings:       map[string]string{},
		PendingChanges: []*PendingChange{},
		Users:          []*User{},
	}
}
