package sync

import (
	"fmt"
	"time"

	"github.com/jhoicas/sucursal-sync/pkg/logger"
)

// RunLog acumula las líneas de log de una corrida para persistirlas en el slot
// de "última corrida", además de emitir cada línea por el logger estructurado.
// Viaja por el pipeline como objeto y el coordinador lo vuelca una sola vez
// al final.
type RunLog struct {
	log   *logger.Logger
	now   func() time.Time
	lines []string
}

// NewRunLog construye el colector. now permite fijar el reloj en tests.
func NewRunLog(log *logger.Logger, now func() time.Time) *RunLog {
	if now == nil {
		now = time.Now
	}
	return &RunLog{log: log, now: now}
}

// Logf agrega una línea con timestamp y la emite por zerolog.
func (r *RunLog) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.lines = append(r.lines, fmt.Sprintf("[%s] %s", r.now().Format("15:04:05"), msg))
	r.log.Info().Str("componente", "sync").Msg(msg)
}

// Lines devuelve las líneas acumuladas en orden.
func (r *RunLog) Lines() []string {
	return r.lines
}

// Reset descarta el buffer (inicio de corrida manual).
func (r *RunLog) Reset() {
	r.lines = nil
}
