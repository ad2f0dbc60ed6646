package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/inventory"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AllocationResult plan FEFO. Success=false no es un error: permite ver cuánto se pudo asignar.
// Un plan fallido se devuelve solo para inspección y no debe aplicarse.
type AllocationResult struct {
	Success        bool
	Allocations    []inventory.AllocationLine
	TotalAllocated decimal.Decimal
	Shortfall      decimal.Decimal
	Message        string
}

// WeightedCost costo unitario promedio ponderado del plan según el costo de cada lote.
func (r *AllocationResult) WeightedCost() decimal.Decimal {
	return inventory.WeightedCost(r.Allocations)
}

// AllocatorUseCase calcula asignaciones FEFO sin escribir nada: lectura de una foto de lotes y cómputo puro.
type AllocatorUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	observer    MovementObserver
}

// NewAllocatorUseCase construye el asignador FEFO.
func NewAllocatorUseCase(productRepo repository.ProductRepository, lotRepo repository.LotRepository, observer MovementObserver) *AllocatorUseCase {
	if observer == nil {
		observer = NopObserver{}
	}
	return &AllocatorUseCase{productRepo: productRepo, lotRepo: lotRepo, observer: observer}
}

// AllocateFEFO decide cómo repartir quantity entre los lotes del producto (First-Expired-First-Out).
// Productos sin lotes: se compara contra current_stock y el plan queda vacío.
func (uc *AllocatorUseCase) AllocateFEFO(ctx context.Context, productID string, quantity decimal.Decimal, venueID string) (*AllocationResult, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidArgument)
	}
	start := time.Now()

	product, err := uc.productRepo.GetActive(ctx, productID, venueID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	var result *AllocationResult
	if !product.TrackLots {
		result = allocateUntracked(product.CurrentStock, quantity)
	} else {
		lots, err := uc.lotRepo.ListAvailableFEFO(ctx, productID)
		if err != nil {
			return nil, err
		}
		result = allocateLots(inventory.PlanFEFO(lots, quantity), quantity, len(lots))
	}

	uc.observer.AllocationPlanned(ctx, AllocationOutcome{
		VenueID:  venueID,
		Success:  result.Success,
		Duration: time.Since(start),
	})
	return result, nil
}

func allocateUntracked(available, quantity decimal.Decimal) *AllocationResult {
	if available.LessThan(quantity) {
		// Sin asignación parcial: TotalAllocated queda en cero.
		return &AllocationResult{
			Success:        false,
			Allocations:    []inventory.AllocationLine{},
			TotalAllocated: decimal.Zero,
			Shortfall:      quantity.Sub(available),
			Message:        fmt.Sprintf("stock insuficiente. Disponible: %s, solicitado: %s", available, quantity),
		}
	}
	return &AllocationResult{
		Success:        true,
		Allocations:    []inventory.AllocationLine{},
		TotalAllocated: quantity,
		Shortfall:      decimal.Zero,
		Message:        "stock asignado de producto sin lotes",
	}
}

func allocateLots(plan inventory.Plan, quantity decimal.Decimal, lotCount int) *AllocationResult {
	if lotCount == 0 {
		return &AllocationResult{
			Success:        false,
			Allocations:    []inventory.AllocationLine{},
			TotalAllocated: decimal.Zero,
			Shortfall:      quantity,
			Message:        "no hay lotes disponibles",
		}
	}
	if !plan.Complete() {
		return &AllocationResult{
			Success:        false,
			Allocations:    plan.Lines,
			TotalAllocated: plan.Allocated,
			Shortfall:      plan.Remaining,
			Message:        fmt.Sprintf("stock insuficiente. Disponible: %s, solicitado: %s", plan.Allocated, quantity),
		}
	}
	return &AllocationResult{
		Success:        true,
		Allocations:    plan.Lines,
		TotalAllocated: quantity,
		Shortfall:      decimal.Zero,
		Message:        "asignación FEFO exitosa",
	}
}
