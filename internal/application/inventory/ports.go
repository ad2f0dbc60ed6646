package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error se hace Rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementOutcome resultado de un movimiento, reportado al observador después de Commit/Rollback.
type MovementOutcome struct {
	VenueID      string
	MovementType entity.MovementType
	Success      bool
	ErrorKind    string // vacío si Success
	Duration     time.Duration
}

// AllocationOutcome resultado de una planificación FEFO.
type AllocationOutcome struct {
	VenueID  string
	Success  bool
	Duration time.Duration
}

// MovementObserver canal lateral de métricas. No participa en la corrección: sus fallos no afectan al movimiento.
type MovementObserver interface {
	MovementApplied(ctx context.Context, outcome MovementOutcome)
	AllocationPlanned(ctx context.Context, outcome AllocationOutcome)
}

// NopObserver descarta los reportes.
type NopObserver struct{}

func (NopObserver) MovementApplied(context.Context, MovementOutcome)     {}
func (NopObserver) AllocationPlanned(context.Context, AllocationOutcome) {}
