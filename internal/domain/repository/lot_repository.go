package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LotRepository define el puerto de persistencia para lotes.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	// GetByID devuelve el lote (activo o no); nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	GetByLotNumber(ctx context.Context, lotNumber string) (*entity.Lot, error)
	// GetForUpdate bloquea el lote activo (id, productID); nil, nil si no existe.
	GetForUpdate(ctx context.Context, id, productID string) (*entity.Lot, error)
	UpdateQuantity(ctx context.Context, id string, qtyCurrent decimal.Decimal) error
	Deactivate(ctx context.Context, id string) error
	// ListAvailableFEFO lotes activos con qty_current > 0 en orden FEFO
	// (expiration_date ASC NULLS LAST, created_at ASC).
	ListAvailableFEFO(ctx context.Context, productID string) ([]*entity.Lot, error)
	// ListActiveFEFO todos los lotes activos (incluye vacíos) en orden FEFO.
	ListActiveFEFO(ctx context.Context, productID string) ([]*entity.Lot, error)
	// ListExpiring lotes activos con stock de productos del venue que vencen hasta limit.
	ListExpiring(ctx context.Context, venueID string, limit time.Time) ([]*entity.Lot, error)
}
