package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote trazable de un producto, con cantidad y vencimiento propios.
// QtyInitial no cambia después de crearse; QtyCurrent solo lo modifica el motor de movimientos
// y nunca es negativo. ExpirationDate nil significa "no vence" (último en el orden FEFO).
type Lot struct {
	ID                string          `db:"id"`
	ProductID         string          `db:"product_id"`
	LotNumber         string          `db:"lot_number"` // único global
	QtyInitial        decimal.Decimal `db:"qty_initial"`
	QtyCurrent        decimal.Decimal `db:"qty_current"`
	CostPrice         decimal.Decimal `db:"cost_price"`
	ExpirationDate    *time.Time      `db:"expiration_date"`
	ProductionDate    *time.Time      `db:"production_date"`
	ReceivedDate      *time.Time      `db:"received_date"`
	SupplierReference string          `db:"supplier_reference"`
	Notes             string          `db:"notes"`
	Metadata          Metadata        `db:"metadata"`
	Active            bool            `db:"active"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// Available indica si el lote puede participar en una asignación FEFO.
func (l *Lot) Available() bool {
	return l.Active && l.QtyCurrent.GreaterThan(decimal.Zero)
}

// ExpiresWithin indica si el lote vence en o antes de limit. Los lotes sin vencimiento nunca aplican.
func (l *Lot) ExpiresWithin(limit time.Time) bool {
	return l.ExpirationDate != nil && !l.ExpirationDate.After(limit)
}
