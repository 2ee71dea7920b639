// Package sheets implementa el espejo remoto sobre una hoja de cálculo de
// Google compartida. Cada cambio pendiente se agrega como una fila; la hoja
// es solo un buzón de replay, nunca fuente de verdad.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/PuntoVenta-local/internal/application/sync"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/pkg/config"
	"github.com/jhoicas/PuntoVenta-local/pkg/logger"
)

// Mirror espejo de cambios sobre Google Sheets.
type Mirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	log           *logger.Logger
}

var _ sync.Mirror = (*Mirror)(nil)

// NewMirror construye el espejo con credenciales de cuenta de servicio.
func NewMirror(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*Mirror, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("inicializar cliente de sheets: %w", err)
	}
	return &Mirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		log:           log,
	}, nil
}

// PushChange agrega el cambio como fila: [id, entity_type, action, payload,
// created_at]. El payload viaja como JSON en una sola celda; el consumidor
// aguas abajo aplica last-write-wins por entidad al hacer replay.
func (m *Mirror) PushChange(ctx context.Context, change *entity.PendingChange) error {
	row := []interface{}{
		change.ID,
		change.EntityType,
		change.Action,
		string(change.Payload),
		change.CreatedAt.Format(time.RFC3339),
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, m.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append en rango %s: %w", m.sheetRange, err)
	}

	m.log.Debug().Int64("change_id", change.ID).Msg("cambio espejado en sheets")
	return nil
}
