package repository

import (
	"context"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para el contador de stock de Product (DIP).
// Todas las consultas se limitan al venue y a productos activos; nil, nil si no existe.
type ProductRepository interface {
	GetActive(ctx context.Context, id, venueID string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id, venueID string) (*entity.Product, error)
	// UpdateStock escribe current_stock. Solo lo invoca el motor de movimientos dentro de su transacción.
	UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error
}
