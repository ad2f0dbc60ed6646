package repository

import (
	"context"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger de movimientos. Solo inserta: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// GetByID nil, nil si no existe en el venue.
	GetByID(ctx context.Context, id, venueID string) (*entity.StockMovement, error)
	// ListByProduct movimientos del producto en orden de creación (ASC), apto para reconstruir saldos.
	ListByProduct(ctx context.Context, productID, venueID string) ([]*entity.StockMovement, error)
	// ListByVenue últimos movimientos del venue (movement_date DESC).
	ListByVenue(ctx context.Context, venueID string, limit int) ([]*entity.StockMovement, error)
}
