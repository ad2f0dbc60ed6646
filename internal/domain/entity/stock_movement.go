package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementTypePurchase    MovementType = "purchase"     // compra a proveedor
	MovementTypeSale        MovementType = "sale"         // venta
	MovementTypeAdjustment  MovementType = "adjustment"   // ajuste de inventario
	MovementTypeWaste       MovementType = "waste"        // merma
	MovementTypeTransferIn  MovementType = "transfer_in"  // traslado de entrada
	MovementTypeTransferOut MovementType = "transfer_out" // traslado de salida
	MovementTypeReturn      MovementType = "return"       // devolución
	MovementTypeProduction  MovementType = "production"   // producción interna
)

var movementTypes = map[MovementType]struct{}{
	MovementTypePurchase:    {},
	MovementTypeSale:        {},
	MovementTypeAdjustment:  {},
	MovementTypeWaste:       {},
	MovementTypeTransferIn:  {},
	MovementTypeTransferOut: {},
	MovementTypeReturn:      {},
	MovementTypeProduction:  {},
}

// Valid indica si el tipo pertenece al catálogo.
func (t MovementType) Valid() bool {
	_, ok := movementTypes[t]
	return ok
}

// ParseMovementType convierte un string al tipo de movimiento o devuelve error si no existe.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidArgument, s)
	}
	return t, nil
}

// StockMovement es un registro inmutable del ledger de stock.
// Quantity es con signo (positivo = entrada, negativo = salida) y siempre QtyAfter = QtyBefore + Quantity,
// donde QtyBefore/QtyAfter son el saldo del producto en el momento del movimiento.
type StockMovement struct {
	ID           string           `db:"id"`
	Seq          int64            `db:"seq"` // orden total de inserción en el ledger
	VenueID      string           `db:"venue_id"`
	ProductID    string           `db:"product_id"`
	LotID        *string          `db:"lot_id"`
	UserID       string           `db:"user_id"`
	MovementType MovementType     `db:"movement_type"`
	Quantity     decimal.Decimal  `db:"quantity"`
	QtyBefore    decimal.Decimal  `db:"qty_before"`
	QtyAfter     decimal.Decimal  `db:"qty_after"`
	UnitCost     *decimal.Decimal `db:"unit_cost"`
	TotalCost    *decimal.Decimal `db:"total_cost"`
	Reference    string           `db:"reference"`
	Notes        string           `db:"notes"`
	Metadata     Metadata         `db:"metadata"`
	MovementDate time.Time        `db:"movement_date"`
	CreatedAt    time.Time        `db:"created_at"`
}

// Balanced verifica la invariante QtyAfter = QtyBefore + Quantity.
func (m *StockMovement) Balanced() bool {
	return m.QtyBefore.Add(m.Quantity).Equal(m.QtyAfter)
}
