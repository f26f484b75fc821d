package sync

import (
	"sort"

	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
)

// resolution resultado de cruzar el snapshot remoto con el índice local de SKUs.
type resolution struct {
	byProduct map[int64]catalog.Entry
	matched   int // entradas emparejadas (cuenta repetidos del mismo producto)
}

// resolve empareja cada entrada por su código contra el índice sku -> product_id.
// Entradas con código vacío o sin producto local se descartan en silencio (solo
// se informan como conteo). Si varias entradas apuntan al mismo producto, gana
// la última posición del array.
func resolve(entries []catalog.Entry, index map[string]int64) resolution {
	r := resolution{byProduct: make(map[int64]catalog.Entry)}
	for _, e := range entries {
		if e.Codigo == "" {
			continue
		}
		pid, ok := index[e.Codigo]
		if !ok {
			continue
		}
		r.byProduct[pid] = e
		r.matched++
	}
	return r
}

// productIDs devuelve los IDs resueltos en orden ascendente, para que lotes y
// logs sean deterministas entre corridas.
func (r resolution) productIDs() []int64 {
	ids := make([]int64, 0, len(r.byProduct))
	for pid := range r.byProduct {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
