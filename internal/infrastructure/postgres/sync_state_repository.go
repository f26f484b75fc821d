package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
)

// Claves del estado operativo del job (una fila por clave en sync_state).
const (
	lockKey    = "sync_branch_stock_lock"
	runLogsKey = "sync_last_run_logs"
)

var _ repository.SyncStateRepository = (*SyncStateRepo)(nil)

// SyncStateRepo implementación de SyncStateRepository sobre PostgreSQL.
// El lock es una fila con expiración, al estilo de un transient: sin token de
// dueño, cualquier proceso puede liberarlo; si una corrida se cuelga, el lock
// simplemente expira y una corrida nueva puede empezar. Carrera conocida y
// aceptada, no una garantía de exclusividad.
type SyncStateRepo struct {
	q Querier
}

// NewSyncStateRepository construye el adaptador de estado de sincronización.
func NewSyncStateRepository(q Querier) *SyncStateRepo {
	return &SyncStateRepo{q: q}
}

// AcquireLock intenta tomar el lock solo si no hay uno vigente.
func (r *SyncStateRepo) AcquireLock(ctx context.Context, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO sync_state (key, value, expires_at, updated_at)
		VALUES ($1, '1', $2, now())
		ON CONFLICT (key) DO UPDATE SET expires_at = $2, updated_at = now()
		WHERE sync_state.expires_at IS NULL OR sync_state.expires_at < now()`
	tag, err := r.q.Exec(ctx, query, lockKey, time.Now().Add(ttl))
	if err != nil {
		return false, fmt.Errorf("adquirir lock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ForceLock toma el lock incondicionalmente (corridas manuales).
func (r *SyncStateRepo) ForceLock(ctx context.Context, ttl time.Duration) error {
	query := `
		INSERT INTO sync_state (key, value, expires_at, updated_at)
		VALUES ($1, '1', $2, now())
		ON CONFLICT (key) DO UPDATE SET expires_at = $2, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, lockKey, time.Now().Add(ttl)); err != nil {
		return fmt.Errorf("forzar lock: %w", err)
	}
	return nil
}

// ReleaseLock libera el lock borrando la fila.
func (r *SyncStateRepo) ReleaseLock(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sync_state WHERE key = $1`, lockKey); err != nil {
		return fmt.Errorf("liberar lock: %w", err)
	}
	return nil
}

// SaveRunLog sobrescribe el slot único del log de la última corrida.
func (r *SyncStateRepo) SaveRunLog(ctx context.Context, lines []string) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("serializar log: %w", err)
	}
	query := `
		INSERT INTO sync_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, runLogsKey, payload); err != nil {
		return fmt.Errorf("guardar log de corrida: %w", err)
	}
	return nil
}

// LastRunLog devuelve el log de la última corrida (nil si no hay).
func (r *SyncStateRepo) LastRunLog(ctx context.Context) ([]string, error) {
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT value FROM sync_state WHERE key = $1`, runLogsKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer log de corrida: %w", err)
	}
	var lines []string
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, fmt.Errorf("deserializar log: %w", err)
	}
	return lines, nil
}

// ClearRunLog borra el slot del log (acción de operador).
func (r *SyncStateRepo) ClearRunLog(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sync_state WHERE key = $1`, runLogsKey); err != nil {
		return fmt.Errorf("limpiar log de corrida: %w", err)
	}
	return nil
}
