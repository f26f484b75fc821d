package repository

import (
	"context"
	"time"
)

// SyncStateRepository puerto del estado operativo del job de sincronización:
// el lock anti-solape y el slot único del log de la última corrida.
type SyncStateRepository interface {
	// AcquireLock intenta tomar el lock si no hay uno vigente. Devuelve false si
	// otro proceso lo tiene sin expirar. El lock no lleva token de dueño: cualquier
	// proceso puede liberarlo, carrera que se acepta porque el TTL excede con
	// holgura la corrida típica.
	AcquireLock(ctx context.Context, ttl time.Duration) (bool, error)

	// ForceLock toma el lock incondicionalmente (corridas manuales).
	ForceLock(ctx context.Context, ttl time.Duration) error

	// ReleaseLock libera el lock.
	ReleaseLock(ctx context.Context) error

	// SaveRunLog sobrescribe el log de la última corrida.
	SaveRunLog(ctx context.Context, lines []string) error

	// LastRunLog devuelve el log de la última corrida (nil si no hay).
	LastRunLog(ctx context.Context) ([]string, error)

	// ClearRunLog borra el slot del log (acción de operador).
	ClearRunLog(ctx context.Context) error
}
