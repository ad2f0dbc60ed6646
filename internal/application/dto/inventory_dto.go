package dto

import (
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements. Quantity con signo.
type RegisterMovementRequest struct {
	ProductID    string           `json:"product_id"`
	LotID        string           `json:"lot_id,omitempty"`
	MovementType string           `json:"movement_type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Metadata     entity.Metadata  `json:"metadata,omitempty"`
}

// ConsumeFEFORequest body para POST /api/stock/fefo/consume. Quantity positiva.
type ConsumeFEFORequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementType string          `json:"movement_type,omitempty"` // por defecto sale
	Reference    string          `json:"reference,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Metadata     entity.Metadata `json:"metadata,omitempty"`
}

// StockMovementResponse registro del ledger.
type StockMovementResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	LotID        *string          `json:"lot_id"`
	UserID       string           `json:"user_id"`
	MovementType string           `json:"movement_type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	QtyBefore    decimal.Decimal  `json:"qty_before"`
	QtyAfter     decimal.Decimal  `json:"qty_after"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost    *decimal.Decimal `json:"total_cost,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Metadata     entity.Metadata  `json:"metadata"`
	MovementDate time.Time        `json:"movement_date"`
}

// NewStockMovementResponse mapea la entidad a la respuesta HTTP.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		LotID:        m.LotID,
		UserID:       m.UserID,
		MovementType: string(m.MovementType),
		Quantity:     m.Quantity,
		QtyBefore:    m.QtyBefore,
		QtyAfter:     m.QtyAfter,
		UnitCost:     m.UnitCost,
		TotalCost:    m.TotalCost,
		Reference:    m.Reference,
		Notes:        m.Notes,
		Metadata:     m.Metadata.OrEmpty(),
		MovementDate: m.MovementDate,
	}
}

// NewStockMovementList mapea una lista de movimientos.
func NewStockMovementList(ms []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewStockMovementResponse(m))
	}
	return out
}

// AllocationLineResponse porción asignada de un lote.
type AllocationLineResponse struct {
	LotID          string          `json:"lot_id"`
	LotNumber      string          `json:"lot_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	CostPrice      decimal.Decimal `json:"cost_price"`
}

// AllocationResponse respuesta de GET /api/stock/products/:id/allocation.
type AllocationResponse struct {
	Success        bool                     `json:"success"`
	Allocations    []AllocationLineResponse `json:"allocations"`
	TotalAllocated decimal.Decimal          `json:"total_allocated"`
	Shortfall      decimal.Decimal          `json:"shortfall"`
	WeightedCost   decimal.Decimal          `json:"weighted_cost"`
	Message        string                   `json:"message"`
}

// LotBalanceResponse saldo de lote dentro del resumen.
type LotBalanceResponse struct {
	LotID          string          `json:"lot_id"`
	LotNumber      string          `json:"lot_number"`
	QtyCurrent     decimal.Decimal `json:"qty_current"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	CostPrice      decimal.Decimal `json:"cost_price"`
}

// StockSummaryResponse respuesta de GET /api/stock/products/:id/summary.
type StockSummaryResponse struct {
	ProductID    string               `json:"product_id"`
	ProductName  string               `json:"product_name"`
	SKU          string               `json:"sku"`
	CurrentStock decimal.Decimal      `json:"current_stock"`
	MinimumStock decimal.Decimal      `json:"minimum_stock"`
	BelowMinimum bool                 `json:"below_minimum"`
	TrackLots    bool                 `json:"track_lots"`
	Lots         []LotBalanceResponse `json:"lots"`
}

// DiscrepancyResponse inconsistencia del ledger.
type DiscrepancyResponse struct {
	MovementID string `json:"movement_id,omitempty"`
	Detail     string `json:"detail"`
}

// ReconciliationResponse respuesta de GET /api/stock/products/:id/reconciliation.
type ReconciliationResponse struct {
	ProductID     string                `json:"product_id"`
	Movements     int                   `json:"movements"`
	LedgerStock   decimal.Decimal       `json:"ledger_stock"`
	CurrentStock  decimal.Decimal       `json:"current_stock"`
	LotStock      *decimal.Decimal      `json:"lot_stock,omitempty"`
	Consistent    bool                  `json:"consistent"`
	Discrepancies []DiscrepancyResponse `json:"discrepancies"`
}

// PartialConsumptionResponse consumo FEFO por lote interrumpido: Movements ya quedaron confirmados.
type PartialConsumptionResponse struct {
	Code        string                  `json:"code"`
	Message     string                  `json:"message"`
	FailedLotID string                  `json:"failed_lot_id"`
	Movements   []StockMovementResponse `json:"movements"`
}
