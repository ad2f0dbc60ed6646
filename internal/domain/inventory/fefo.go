package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AllocationLine es la porción de un lote asignada por el plan FEFO.
type AllocationLine struct {
	LotID          string
	LotNumber      string
	Quantity       decimal.Decimal
	ExpirationDate *time.Time
	CostPrice      decimal.Decimal
}

// Plan resultado puro del recorrido FEFO sobre una foto de lotes.
// Remaining > 0 significa que los lotes no alcanzaron para cubrir la cantidad pedida.
type Plan struct {
	Lines     []AllocationLine
	Allocated decimal.Decimal
	Remaining decimal.Decimal
}

// Complete indica si el plan cubre toda la cantidad pedida.
func (p Plan) Complete() bool {
	return p.Remaining.IsZero()
}

// LessFEFO es el comparador FEFO: vencimiento ASC con los lotes sin vencimiento al final,
// luego fecha de creación ASC (FIFO entre iguales) y por último ID para un orden total.
func LessFEFO(a, b *entity.Lot) bool {
	switch {
	case a.ExpirationDate != nil && b.ExpirationDate == nil:
		return true
	case a.ExpirationDate == nil && b.ExpirationDate != nil:
		return false
	case a.ExpirationDate != nil && b.ExpirationDate != nil && !a.ExpirationDate.Equal(*b.ExpirationDate):
		return a.ExpirationDate.Before(*b.ExpirationDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// SortFEFO ordena los lotes en sitio según LessFEFO.
func SortFEFO(lots []*entity.Lot) {
	sort.SliceStable(lots, func(i, j int) bool { return LessFEFO(lots[i], lots[j]) })
}

// PlanFEFO recorre los lotes en orden FEFO tomando min(qty_current, restante) de cada uno.
// Ignora lotes inactivos o vacíos y no modifica los lotes recibidos.
func PlanFEFO(lots []*entity.Lot, quantity decimal.Decimal) Plan {
	candidates := make([]*entity.Lot, 0, len(lots))
	for _, l := range lots {
		if l.Available() {
			candidates = append(candidates, l)
		}
	}
	SortFEFO(candidates)

	remaining := quantity
	lines := make([]AllocationLine, 0, len(candidates))
	for _, l := range candidates {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(l.QtyCurrent, remaining)
		lines = append(lines, AllocationLine{
			LotID:          l.ID,
			LotNumber:      l.LotNumber,
			Quantity:       take,
			ExpirationDate: l.ExpirationDate,
			CostPrice:      l.CostPrice,
		})
		remaining = remaining.Sub(take)
	}
	return Plan{
		Lines:     lines,
		Allocated: quantity.Sub(remaining),
		Remaining: remaining,
	}
}
