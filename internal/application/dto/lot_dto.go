package dto

import (
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReceiveLotRequest body para POST /api/lots.
type ReceiveLotRequest struct {
	ProductID         string          `json:"product_id"`
	LotNumber         string          `json:"lot_number"`
	QtyInitial        decimal.Decimal `json:"qty_initial"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	ExpirationDate    *time.Time      `json:"expiration_date,omitempty"`
	ProductionDate    *time.Time      `json:"production_date,omitempty"`
	ReceivedDate      *time.Time      `json:"received_date,omitempty"`
	SupplierReference string          `json:"supplier_reference,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Metadata          entity.Metadata `json:"metadata,omitempty"`
}

// LotResponse lote expuesto por HTTP.
type LotResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	LotNumber         string          `json:"lot_number"`
	QtyInitial        decimal.Decimal `json:"qty_initial"`
	QtyCurrent        decimal.Decimal `json:"qty_current"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	ExpirationDate    *time.Time      `json:"expiration_date"`
	ProductionDate    *time.Time      `json:"production_date,omitempty"`
	ReceivedDate      *time.Time      `json:"received_date,omitempty"`
	SupplierReference string          `json:"supplier_reference,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Metadata          entity.Metadata `json:"metadata"`
	Active            bool            `json:"active"`
}

// NewLotResponse mapea la entidad a la respuesta HTTP.
func NewLotResponse(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:                l.ID,
		ProductID:         l.ProductID,
		LotNumber:         l.LotNumber,
		QtyInitial:        l.QtyInitial,
		QtyCurrent:        l.QtyCurrent,
		CostPrice:         l.CostPrice,
		ExpirationDate:    l.ExpirationDate,
		ProductionDate:    l.ProductionDate,
		ReceivedDate:      l.ReceivedDate,
		SupplierReference: l.SupplierReference,
		Notes:             l.Notes,
		Metadata:          l.Metadata.OrEmpty(),
		Active:            l.Active,
	}
}

// ReceiveLotResponse lote creado y movimiento de compra asociado.
type ReceiveLotResponse struct {
	Lot      LotResponse           `json:"lot"`
	Movement StockMovementResponse `json:"movement"`
}
