package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReceiveLotInput alta de un lote recibido de proveedor.
type ReceiveLotInput struct {
	VenueID           string
	ProductID         string
	LotNumber         string
	QtyInitial        decimal.Decimal
	CostPrice         decimal.Decimal
	ExpirationDate    *time.Time
	ProductionDate    *time.Time
	ReceivedDate      *time.Time
	SupplierReference string
	Notes             string
	Metadata          entity.Metadata
}

// LotUseCase alta, baja y consulta de vencimientos de lotes.
type LotUseCase struct {
	txRunner    TxRunner
	engine      *MovementEngine
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	now         func() time.Time
}

func NewLotUseCase(txRunner TxRunner, engine *MovementEngine, productRepo repository.ProductRepository, lotRepo repository.LotRepository) *LotUseCase {
	return &LotUseCase{
		txRunner:    txRunner,
		engine:      engine,
		productRepo: productRepo,
		lotRepo:     lotRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ReceiveLot crea el lote vacío y en la misma transacción aplica una compra por QtyInitial,
// de modo que el saldo del lote y del producto queda respaldado por el ledger.
func (uc *LotUseCase) ReceiveLot(ctx context.Context, in ReceiveLotInput, userID string) (*entity.Lot, *entity.StockMovement, error) {
	in.LotNumber = strings.TrimSpace(in.LotNumber)
	if in.VenueID == "" || in.ProductID == "" || in.LotNumber == "" {
		return nil, nil, fmt.Errorf("%w: venue, producto y número de lote son obligatorios", domain.ErrInvalidArgument)
	}
	if !in.QtyInitial.IsPositive() {
		return nil, nil, fmt.Errorf("%w: la cantidad inicial debe ser positiva", domain.ErrInvalidArgument)
	}
	if in.CostPrice.IsNegative() {
		return nil, nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidArgument)
	}

	var (
		lot *entity.Lot
		mov *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error {
		// El bloqueo del producto se toma antes de insertar el lote, mismo orden que ApplyMovement
		product, err := productRepo.GetForUpdate(ctx, in.ProductID, in.VenueID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		if !product.TrackLots {
			return fmt.Errorf("%w: el producto %s no maneja lotes", domain.ErrInvalidOperation, product.SKU)
		}

		existing, err := lotRepo.GetByLotNumber(ctx, in.LotNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: el lote %s ya existe", domain.ErrDuplicate, in.LotNumber)
		}

		now := uc.now()
		received := in.ReceivedDate
		if received == nil {
			received = &now
		}
		lot = &entity.Lot{
			ID:                uuid.New().String(),
			ProductID:         in.ProductID,
			LotNumber:         in.LotNumber,
			QtyInitial:        in.QtyInitial,
			QtyCurrent:        decimal.Zero,
			CostPrice:         in.CostPrice,
			ExpirationDate:    in.ExpirationDate,
			ProductionDate:    in.ProductionDate,
			ReceivedDate:      received,
			SupplierReference: in.SupplierReference,
			Notes:             in.Notes,
			Metadata:          in.Metadata.Clone().OrEmpty(),
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := lotRepo.Create(ctx, lot); err != nil {
			return err
		}

		cost := in.CostPrice
		mov, err = uc.engine.ApplyInTx(ctx, movRepo, lotRepo, productRepo, MovementInput{
			VenueID:      in.VenueID,
			ProductID:    in.ProductID,
			LotID:        lot.ID,
			MovementType: entity.MovementTypePurchase,
			Quantity:     in.QtyInitial,
			UnitCost:     &cost,
			Reference:    in.SupplierReference,
			Notes:        fmt.Sprintf("Ingreso del lote %s", in.LotNumber),
		}, userID)
		if err != nil {
			return err
		}
		lot.QtyCurrent = in.QtyInitial
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	uc.engine.log.Info().
		Str("venue_id", in.VenueID).
		Str("product_id", in.ProductID).
		Str("lot_number", lot.LotNumber).
		Str("qty_initial", lot.QtyInitial.String()).
		Msg("lote recibido")
	return lot, mov, nil
}

// RetireLot baja lógica de un lote sin stock.
func (uc *LotUseCase) RetireLot(ctx context.Context, lotID, venueID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error {
		lot, err := lotRepo.GetByID(ctx, lotID)
		if err != nil {
			return err
		}
		if lot == nil || !lot.Active {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
		}
		product, err := productRepo.GetActive(ctx, lot.ProductID, venueID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
		}

		locked, err := lotRepo.GetForUpdate(ctx, lot.ID, lot.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
		}
		if locked.QtyCurrent.IsPositive() {
			return fmt.Errorf("%w: el lote %s aún tiene stock (%s)", domain.ErrInvalidOperation, locked.LotNumber, locked.QtyCurrent)
		}
		return lotRepo.Deactivate(ctx, locked.ID)
	})
}

// ExpiringSoon lotes con stock del venue que vencen dentro de days días, por fecha de vencimiento.
func (uc *LotUseCase) ExpiringSoon(ctx context.Context, venueID string, days int) ([]*entity.Lot, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days debe ser positivo", domain.ErrInvalidArgument)
	}
	limit := uc.now().AddDate(0, 0, days)
	lots, err := uc.lotRepo.ListExpiring(ctx, venueID, limit)
	if err != nil {
		return nil, err
	}
	out := lots[:0]
	for _, l := range lots {
		if l.Available() && l.ExpiresWithin(limit) {
			out = append(out, l)
		}
	}
	return out, nil
}
