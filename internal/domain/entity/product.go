package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es la raíz de agregado del stock de un local (venue).
// CurrentStock es la suma de QtyCurrent de los lotes activos cuando TrackLots es true;
// si no, es el contador autoritativo. Solo el motor de movimientos lo modifica.
type Product struct {
	ID           string          `db:"id"`
	VenueID      string          `db:"venue_id"`
	Name         string          `db:"name"`
	SKU          string          `db:"sku"`
	CurrentStock decimal.Decimal `db:"current_stock"`
	MinimumStock decimal.Decimal `db:"minimum_stock"`
	TrackLots    bool            `db:"track_lots"` // true = asignación FEFO por lotes
	Active       bool            `db:"active"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// BelowMinimum indica si el stock actual está por debajo de la existencia mínima.
func (p *Product) BelowMinimum() bool {
	return p.CurrentStock.LessThan(p.MinimumStock)
}
