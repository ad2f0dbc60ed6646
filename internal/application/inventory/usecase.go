package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/inventory"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/jhoicas/Inventario-lotes/pkg/logger"
	"github.com/shopspring/decimal"
)

// MovementEngine es el único camino que modifica current_stock y qty_current.
// Cada movimiento es una unidad atómica: bloqueo de fila (SELECT FOR UPDATE) del producto y del lote,
// validación de saldos no negativos, escritura de saldos y alta del movimiento inmutable en el ledger.
type MovementEngine struct {
	txRunner TxRunner
	observer MovementObserver
	log      *logger.Logger
	now      func() time.Time
}

// NewMovementEngine construye el motor. observer y log pueden ser nil.
func NewMovementEngine(txRunner TxRunner, observer MovementObserver, log *logger.Logger) *MovementEngine {
	if observer == nil {
		observer = NopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MovementEngine{
		txRunner: txRunner,
		observer: observer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// MovementInput datos de un movimiento. Quantity es con signo (positivo entrada, negativo salida).
// LotID vacío = producto sin lotes o movimiento sobre el agregado.
type MovementInput struct {
	VenueID      string
	ProductID    string
	LotID        string
	MovementType entity.MovementType
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reference    string
	Notes        string
	Metadata     entity.Metadata
}

func validateMovement(input MovementInput, userID string) error {
	if input.VenueID == "" || input.ProductID == "" || userID == "" {
		return fmt.Errorf("%w: venue, producto y usuario son obligatorios", domain.ErrInvalidArgument)
	}
	if !input.MovementType.Valid() {
		return fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidArgument, input.MovementType)
	}
	if input.Quantity.IsZero() {
		return fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrInvalidArgument)
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidArgument)
	}
	return nil
}

// ApplyMovement aplica un movimiento en su propia transacción y devuelve el registro del ledger.
// Si algo falla se hace Rollback de todo (saldos y ledger).
func (e *MovementEngine) ApplyMovement(ctx context.Context, input MovementInput, userID string) (*entity.StockMovement, error) {
	start := time.Now()
	if err := validateMovement(input, userID); err != nil {
		e.observe(ctx, input, start, err)
		return nil, err
	}

	var mov *entity.StockMovement
	err := e.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error {
		m, err := e.applyLocked(ctx, movRepo, lotRepo, productRepo, input, userID)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	e.observe(ctx, input, start, err)
	if err != nil {
		return nil, err
	}
	e.logApplied(mov)
	return mov, nil
}

// ApplyInTx ejecuta el mismo protocolo con los repositorios de una transacción abierta por el caller.
// No hace Commit: la atomicidad la define la transacción externa.
func (e *MovementEngine) ApplyInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	userID string,
) (*entity.StockMovement, error) {
	if err := validateMovement(input, userID); err != nil {
		return nil, err
	}
	return e.applyLocked(ctx, movRepo, lotRepo, productRepo, input, userID)
}

func (e *MovementEngine) applyLocked(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	userID string,
) (*entity.StockMovement, error) {
	// 1. Bloquea la fila del producto; el bloqueo se mantiene hasta Commit/Rollback
	product, err := productRepo.GetForUpdate(ctx, input.ProductID, input.VenueID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
	}
	if product.TrackLots && input.LotID == "" {
		return nil, fmt.Errorf("%w: el producto %s maneja lotes; indique lot_id", domain.ErrInvalidArgument, product.SKU)
	}
	if !product.TrackLots && input.LotID != "" {
		return nil, fmt.Errorf("%w: el producto %s no maneja lotes", domain.ErrInvalidArgument, product.SKU)
	}

	// 2-3. Saldo del producto
	qtyBefore := product.CurrentStock
	qtyAfter := qtyBefore.Add(input.Quantity)
	if qtyAfter.IsNegative() {
		e.log.Warn().
			Str("venue_id", input.VenueID).
			Str("product_id", input.ProductID).
			Str("current", qtyBefore.String()).
			Str("change", input.Quantity.String()).
			Msg("movimiento rechazado: stock negativo")
		return nil, fmt.Errorf("%w: el movimiento dejaría stock negativo (actual %s, cambio %s)",
			domain.ErrInsufficientStock, qtyBefore, input.Quantity)
	}

	// 4. Lote: bloqueo y validación independiente
	var lotID *string
	if input.LotID != "" {
		lot, err := lotRepo.GetForUpdate(ctx, input.LotID, input.ProductID)
		if err != nil {
			return nil, err
		}
		if lot == nil {
			return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, input.LotID)
		}
		lotAfter := lot.QtyCurrent.Add(input.Quantity)
		if lotAfter.IsNegative() {
			e.log.Warn().
				Str("venue_id", input.VenueID).
				Str("lot_number", lot.LotNumber).
				Str("current", lot.QtyCurrent.String()).
				Str("change", input.Quantity.String()).
				Msg("movimiento rechazado: stock de lote negativo")
			return nil, fmt.Errorf("%w: el movimiento dejaría el lote %s en negativo (actual %s, cambio %s)",
				domain.ErrInsufficientStock, lot.LotNumber, lot.QtyCurrent, input.Quantity)
		}
		if err := lotRepo.UpdateQuantity(ctx, lot.ID, lotAfter); err != nil {
			return nil, err
		}
		id := lot.ID
		lotID = &id
	}

	// 5. Saldo del producto
	if err := productRepo.UpdateStock(ctx, product.ID, qtyAfter); err != nil {
		return nil, err
	}

	// 6. Registro inmutable en el ledger
	now := e.now()
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		VenueID:      input.VenueID,
		ProductID:    input.ProductID,
		LotID:        lotID,
		UserID:       userID,
		MovementType: input.MovementType,
		Quantity:     input.Quantity,
		QtyBefore:    qtyBefore,
		QtyAfter:     qtyAfter,
		Reference:    input.Reference,
		Notes:        input.Notes,
		Metadata:     input.Metadata.Clone().OrEmpty(),
		MovementDate: now,
		CreatedAt:    now,
	}
	if input.UnitCost != nil {
		unitCost := *input.UnitCost
		totalCost := inventory.TotalCost(unitCost, input.Quantity)
		mov.UnitCost = &unitCost
		mov.TotalCost = &totalCost
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (e *MovementEngine) observe(ctx context.Context, input MovementInput, start time.Time, err error) {
	e.observer.MovementApplied(ctx, MovementOutcome{
		VenueID:      input.VenueID,
		MovementType: input.MovementType,
		Success:      err == nil,
		ErrorKind:    ErrorKind(err),
		Duration:     time.Since(start),
	})
}

func (e *MovementEngine) logApplied(mov *entity.StockMovement) {
	e.log.Debug().
		Str("venue_id", mov.VenueID).
		Str("product_id", mov.ProductID).
		Str("movement_type", string(mov.MovementType)).
		Str("quantity", mov.Quantity.String()).
		Str("qty_after", mov.QtyAfter.String()).
		Msg("movimiento aplicado")
}
