package sync

import (
	"context"
	"fmt"
	"sort"
	"strings"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
	"github.com/jhoicas/sucursal-sync/pkg/logger"
)

// Options parámetros operativos del job de sincronización.
type Options struct {
	Sucursales     []string
	LockTTL        time.Duration
	BatchSize      int
	AggregateStock bool
}

// Report resultado de una corrida. El job nunca propaga errores más allá de
// Run: el estado final se comunica por Failed/Err y por el contenido del log.
type Report struct {
	RunID           string
	Manual          bool
	Skipped         bool
	Failed          bool
	Err             error
	MatchedProducts int
	StockUpdates    int
	MinimumUpdates  int
	PriceUpdates    int
	Log             []string
}

// UseCase coordina la corrida completa: lock, fetch, resolución, normalización,
// deltas, persistencia por lotes y volcado del log. Una corrida es secuencial;
// el solape entre procesos lo resuelve el lock corto del SyncStateRepository y
// el solape dentro del mismo proceso (corridas manuales por HTTP) lo resuelve
// el mutex del coordinador.
type UseCase struct {
	fetcher  CatalogFetcher
	stocks   repository.StockRepository
	products repository.ProductRepository
	state    repository.SyncStateRepository
	opts     Options
	log      *logger.Logger
	runlog   *RunLog
	mu       stdsync.Mutex // serializa corridas dentro del proceso: el RunLog es compartido
}

// NewUseCase construye el coordinador. Aplica defaults a Options vacíos.
func NewUseCase(
	fetcher CatalogFetcher,
	stocks repository.StockRepository,
	products repository.ProductRepository,
	state repository.SyncStateRepository,
	opts Options,
	log *logger.Logger,
) *UseCase {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 60 * time.Second
	}
	return &UseCase{
		fetcher:  fetcher,
		stocks:   stocks,
		products: products,
		state:    state,
		opts:     opts,
		log:      log,
		runlog:   NewRunLog(log, nil),
	}
}

// Run ejecuta una corrida. manual=true salta el chequeo de lock (pero lo toma
// igual, para excluir corridas automáticas concurrentes) y reinicia el buffer
// de log. Cualquier fallo se captura acá y se convierte en un Report fallido.
func (uc *UseCase) Run(ctx context.Context, manual bool) Report {
	// Dos corridas manuales pueden llegar a la vez por HTTP; el lock de base de
	// datos no las excluye entre sí, así que acá se serializan.
	uc.mu.Lock()
	defer uc.mu.Unlock()

	report := Report{RunID: uuid.New().String(), Manual: manual}
	rl := uc.runlog

	if manual {
		rl.Reset()
		rl.Logf("Iniciando sincronización manual de inventario (corrida %s)", report.RunID)
	} else {
		rl.Logf("Iniciando sincronización automática (corrida %s)", report.RunID)
	}
	rl.Logf("Sucursales configuradas: %s", strings.Join(uc.opts.Sucursales, ", "))

	// Lock anti-solape. Las corridas manuales lo toman incondicionalmente; las
	// automáticas se saltan la corrida si hay uno vigente (sin liberarlo: no es
	// nuestro).
	if manual {
		if err := uc.state.ForceLock(ctx, uc.opts.LockTTL); err != nil {
			return uc.failBeforeLock(ctx, rl, report, fmt.Errorf("tomar lock de sincronización: %w", err))
		}
	} else {
		acquired, err := uc.state.AcquireLock(ctx, uc.opts.LockTTL)
		if err != nil {
			return uc.failBeforeLock(ctx, rl, report, fmt.Errorf("tomar lock de sincronización: %w", err))
		}
		if !acquired {
			rl.Logf("Sincronización ya en proceso, saltando ejecución")
			report.Skipped = true
			return uc.finish(ctx, rl, report, false)
		}
	}

	runErr := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("pánico en la corrida: %v", p)
			}
		}()
		return uc.pipeline(ctx, rl, &report)
	}()

	if runErr != nil {
		rl.Logf("ERROR: %v", runErr)
		report.Failed = true
		report.Err = runErr
	}

	return uc.finish(ctx, rl, report, true)
}

// failBeforeLock cierra una corrida que falló antes de poseer el lock.
func (uc *UseCase) failBeforeLock(ctx context.Context, rl *RunLog, report Report, err error) Report {
	rl.Logf("ERROR: %v", err)
	report.Failed = true
	report.Err = err
	return uc.finish(ctx, rl, report, false)
}

// finish libera el lock (si era nuestro) y persiste el log. Se ejecuta en todo
// camino de salida: éxito, fallo o corrida saltada.
func (uc *UseCase) finish(ctx context.Context, rl *RunLog, report Report, ownsLock bool) Report {
	if ownsLock {
		if err := uc.state.ReleaseLock(ctx); err != nil {
			uc.log.Error().Err(err).Msg("liberar lock de sincronización")
		}
	}
	rl.Logf("Sincronización finalizada")
	report.Log = rl.Lines()
	if err := uc.state.SaveRunLog(ctx, rl.Lines()); err != nil {
		uc.log.Error().Err(err).Msg("persistir log de sincronización")
	}
	return report
}

// pipeline ejecuta las etapas en orden: fetch, índice SKU, resolución y los
// tres dominios de atributos. Los dominios son independientes; se conserva el
// orden mínimo-precios-stock solo por legibilidad del log.
func (uc *UseCase) pipeline(ctx context.Context, rl *RunLog, report *Report) error {
	rl.Logf("Conectando con la API externa...")
	entries, err := uc.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	rl.Logf("API conectada correctamente. Artículos recibidos: %d", len(entries))

	rl.Logf("Obteniendo mapeo SKU -> producto...")
	index, err := uc.products.SKUIndex(ctx)
	if err != nil {
		return fmt.Errorf("consultar SKUs: %w", err)
	}
	rl.Logf("SKUs encontrados en el catálogo local: %d", len(index))

	res := resolve(entries, index)
	report.MatchedProducts = len(res.byProduct)
	rl.Logf("Artículos que coinciden por SKU: %d de %d", res.matched, len(entries))

	ids := res.productIDs()
	if len(ids) == 0 {
		rl.Logf("Ningún artículo coincide con productos locales; nada para sincronizar")
		return nil
	}

	if err := uc.syncMinimums(ctx, rl, report, ids, res); err != nil {
		return err
	}
	if err := uc.syncPrices(ctx, rl, report, ids, res); err != nil {
		return err
	}
	if err := uc.syncStock(ctx, rl, report, ids, res); err != nil {
		return err
	}

	if report.StockUpdates > 0 || report.MinimumUpdates > 0 || report.PriceUpdates > 0 {
		rl.Logf("Sincronización completada exitosamente")
		if report.StockUpdates > 0 {
			rl.Logf("Registros de stock procesados: %d", report.StockUpdates)
		}
		if report.MinimumUpdates > 0 {
			rl.Logf("Productos con stock mínimo actualizado: %d", report.MinimumUpdates)
		}
		if report.PriceUpdates > 0 {
			rl.Logf("Campos de precio actualizados: %d", report.PriceUpdates)
		}
	} else {
		rl.Logf("Sincronización completada, sin cambios necesarios")
	}
	return nil
}

func (uc *UseCase) syncMinimums(ctx context.Context, rl *RunLog, report *Report, ids []int64, res resolution) error {
	rl.Logf("Sincronizando stock mínimo...")
	current, err := uc.products.MinimumsFor(ctx, ids)
	if err != nil {
		return fmt.Errorf("consultar stock mínimo: %w", err)
	}
	deltas := minimumDeltas(ids, res.byProduct, current)
	for _, d := range deltas {
		if err := uc.products.SetMinimum(ctx, d.ProductID, d.Minimum); err != nil {
			return fmt.Errorf("actualizar stock mínimo del producto %d: %w", d.ProductID, err)
		}
	}
	report.MinimumUpdates = len(deltas)
	if len(deltas) > 0 {
		rl.Logf("Stock mínimo actualizado en %d productos", len(deltas))
	} else {
		rl.Logf("Stock mínimo ya está actualizado")
	}
	return nil
}

func (uc *UseCase) syncPrices(ctx context.Context, rl *RunLog, report *Report, ids []int64, res resolution) error {
	rl.Logf("Sincronizando precios...")
	current, err := uc.products.PricesFor(ctx, ids)
	if err != nil {
		return fmt.Errorf("consultar precios: %w", err)
	}
	deltas := priceDeltas(ids, res.byProduct, current)
	for _, d := range deltas {
		if err := uc.products.SetPrices(ctx, d.ProductID, d.Regular, d.Sale, d.Effective); err != nil {
			return fmt.Errorf("actualizar precios del producto %d: %w", d.ProductID, err)
		}
		report.PriceUpdates += d.FieldsChanged
	}
	if report.PriceUpdates > 0 {
		rl.Logf("Precios actualizados en %d campos", report.PriceUpdates)
	} else {
		rl.Logf("Precios ya están actualizados")
	}
	return nil
}

// syncStock calcula y aplica los deltas de stock por sucursal en lotes.
// La persistencia es best-effort: un lote fallido aborta la corrida pero los
// lotes ya confirmados quedan confirmados (no hay transacción que abarque toda
// la corrida; endurecerlo requeriría cambiar este contrato a propósito).
func (uc *UseCase) syncStock(ctx context.Context, rl *RunLog, report *Report, ids []int64, res resolution) error {
	rl.Logf("Consultando stock actual en base de datos...")
	current, err := uc.stocks.CurrentFor(ctx, ids, uc.opts.Sucursales)
	if err != nil {
		return fmt.Errorf("consultar stock actual: %w", err)
	}

	rl.Logf("Calculando cambios necesarios...")
	deltas := stockDeltas(ids, res.byProduct, uc.opts.Sucursales, current)

	total := 0
	for _, slug := range uc.opts.Sucursales {
		if n := len(deltas[slug]); n > 0 {
			rl.Logf("Sucursal '%s': %d cambios pendientes", slug, n)
			total += n
		}
	}
	if total == 0 {
		rl.Logf("No hay cambios de stock necesarios, el stock ya está actualizado")
		return nil
	}

	rl.Logf("Aplicando cambios en base de datos...")
	touched := make(map[int64]struct{})
	for _, slug := range uc.opts.Sucursales {
		rows := deltas[slug]
		for start := 0; start < len(rows); start += uc.opts.BatchSize {
			end := min(start+uc.opts.BatchSize, len(rows))
			if err := uc.stocks.UpsertBatch(ctx, slug, rows[start:end]); err != nil {
				return fmt.Errorf("upsert de stock en sucursal %s: %w", slug, err)
			}
			report.StockUpdates += end - start
		}
		for _, r := range rows {
			touched[r.ProductID] = struct{}{}
		}
	}

	if uc.opts.AggregateStock && len(touched) > 0 {
		pids := make([]int64, 0, len(touched))
		for pid := range touched {
			pids = append(pids, pid)
		}
		sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
		if err := uc.stocks.RefreshAggregates(ctx, pids); err != nil {
			return fmt.Errorf("recalcular stock agregado: %w", err)
		}
		rl.Logf("Stock agregado recalculado en %d productos", len(pids))
	}
	return nil
}
