package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-lotes/internal/application/dto"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al motor: ApplyMovement(ctx, MovementInput, userID).
func (e *MovementEngine) RegisterMovementFromRequest(ctx context.Context, venueID, userID string, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	movementType, err := entity.ParseMovementType(in.MovementType)
	if err != nil {
		return nil, err
	}
	return e.ApplyMovement(ctx, MovementInput{
		VenueID:      venueID,
		ProductID:    in.ProductID,
		LotID:        in.LotID,
		MovementType: movementType,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Reference:    in.Reference,
		Notes:        in.Notes,
		Metadata:     in.Metadata,
	}, userID)
}

// ConsumeFromRequest adapta el request HTTP al orquestador FEFO.
func (uc *FEFOMovementUseCase) ConsumeFromRequest(ctx context.Context, venueID, userID string, in dto.ConsumeFEFORequest) ([]*entity.StockMovement, error) {
	var movementType entity.MovementType
	if in.MovementType != "" {
		t, err := entity.ParseMovementType(in.MovementType)
		if err != nil {
			return nil, err
		}
		movementType = t
	}
	return uc.ConsumeByFEFO(ctx, FEFOConsumeInput{
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		VenueID:      venueID,
		UserID:       userID,
		MovementType: movementType,
		Reference:    in.Reference,
		Notes:        in.Notes,
		Metadata:     in.Metadata,
	})
}

// ReceiveFromRequest adapta el request HTTP al alta de lote.
func (uc *LotUseCase) ReceiveFromRequest(ctx context.Context, venueID, userID string, in dto.ReceiveLotRequest) (*entity.Lot, *entity.StockMovement, error) {
	return uc.ReceiveLot(ctx, ReceiveLotInput{
		VenueID:           venueID,
		ProductID:         in.ProductID,
		LotNumber:         in.LotNumber,
		QtyInitial:        in.QtyInitial,
		CostPrice:         in.CostPrice,
		ExpirationDate:    in.ExpirationDate,
		ProductionDate:    in.ProductionDate,
		ReceivedDate:      in.ReceivedDate,
		SupplierReference: in.SupplierReference,
		Notes:             in.Notes,
		Metadata:          in.Metadata,
	}, userID)
}
