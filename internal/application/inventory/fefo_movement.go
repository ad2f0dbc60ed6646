package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// FEFOConsumeInput salida de stock que se reparte entre lotes por vencimiento. Quantity es positiva.
type FEFOConsumeInput struct {
	ProductID    string
	Quantity     decimal.Decimal
	VenueID      string
	UserID       string
	MovementType entity.MovementType // por defecto sale
	Reference    string
	Notes        string
	Metadata     entity.Metadata
}

// FEFOMovementUseCase orquesta asignador + motor: planifica y emite un movimiento negativo por lote.
type FEFOMovementUseCase struct {
	allocator *AllocatorUseCase
	engine    *MovementEngine
	txRunner  TxRunner
	atomic    bool
}

// NewFEFOMovementUseCase construye el orquestador. Con atomic=true todas las líneas del plan
// se aplican en una sola transacción; con false cada lote confirma por separado.
func NewFEFOMovementUseCase(allocator *AllocatorUseCase, engine *MovementEngine, txRunner TxRunner, atomic bool) *FEFOMovementUseCase {
	return &FEFOMovementUseCase{allocator: allocator, engine: engine, txRunner: txRunner, atomic: atomic}
}

// ConsumeByFEFO consume Quantity del producto siguiendo el plan FEFO y devuelve los movimientos en orden del plan.
func (uc *FEFOMovementUseCase) ConsumeByFEFO(ctx context.Context, in FEFOConsumeInput) ([]*entity.StockMovement, error) {
	if in.MovementType == "" {
		in.MovementType = entity.MovementTypeSale
	}

	result, err := uc.allocator.AllocateFEFO(ctx, in.ProductID, in.Quantity, in.VenueID)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("%w (%s)", domain.ErrInsufficientStock, result.Message)
	}

	inputs := uc.buildInputs(in, result)
	if uc.atomic {
		return uc.applyAtomic(ctx, inputs, in.UserID)
	}
	return uc.applyPerLot(ctx, inputs, in.UserID)
}

// buildInputs traduce el plan a movimientos. Producto sin lotes: un único movimiento sin lote.
func (uc *FEFOMovementUseCase) buildInputs(in FEFOConsumeInput, result *AllocationResult) []MovementInput {
	base := MovementInput{
		VenueID:      in.VenueID,
		ProductID:    in.ProductID,
		MovementType: in.MovementType,
		Reference:    in.Reference,
		Notes:        in.Notes,
		Metadata:     in.Metadata,
	}
	if len(result.Allocations) == 0 {
		base.Quantity = in.Quantity.Neg()
		return []MovementInput{base}
	}

	inputs := make([]MovementInput, 0, len(result.Allocations))
	for _, line := range result.Allocations {
		mi := base
		mi.LotID = line.LotID
		mi.Quantity = line.Quantity.Neg()
		cost := line.CostPrice
		mi.UnitCost = &cost
		inputs = append(inputs, mi)
	}
	return inputs
}

func (uc *FEFOMovementUseCase) applyAtomic(ctx context.Context, inputs []MovementInput, userID string) ([]*entity.StockMovement, error) {
	start := time.Now()
	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error {
		movements = make([]*entity.StockMovement, 0, len(inputs))
		for _, mi := range inputs {
			mov, err := uc.engine.ApplyInTx(ctx, movRepo, lotRepo, productRepo, mi, userID)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		return nil
	})
	if err != nil {
		uc.engine.observe(ctx, inputs[0], start, err)
		if errors.Is(err, domain.ErrInvalidOperation) {
			return nil, fmt.Errorf("consumo FEFO revertido: %w", err)
		}
		return nil, err
	}
	for i, mov := range movements {
		uc.engine.observe(ctx, inputs[i], start, nil)
		uc.engine.logApplied(mov)
	}
	return movements, nil
}

func (uc *FEFOMovementUseCase) applyPerLot(ctx context.Context, inputs []MovementInput, userID string) ([]*entity.StockMovement, error) {
	movements := make([]*entity.StockMovement, 0, len(inputs))
	for _, mi := range inputs {
		mov, err := uc.engine.ApplyMovement(ctx, mi, userID)
		if err != nil {
			if len(movements) == 0 {
				return nil, err
			}
			uc.engine.log.Error().
				Str("venue_id", mi.VenueID).
				Str("product_id", mi.ProductID).
				Str("lot_id", mi.LotID).
				Int("committed", len(movements)).
				Err(err).
				Msg("consumo FEFO parcial")
			return movements, &PartialConsumptionError{Committed: movements, FailedLotID: mi.LotID, Err: err}
		}
		movements = append(movements, mov)
	}
	return movements, nil
}
