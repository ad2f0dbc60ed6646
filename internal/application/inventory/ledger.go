package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const defaultLedgerLimit = 100

// Discrepancy inconsistencia detectada al recorrer el ledger.
type Discrepancy struct {
	MovementID string // vacío si es de saldos agregados
	Detail     string
}

// Reconciliation resultado de reconstruir el stock de un producto desde su ledger.
type Reconciliation struct {
	ProductID     string
	Movements     int
	LedgerStock   decimal.Decimal // suma de cantidades
	CurrentStock  decimal.Decimal
	LotStock      *decimal.Decimal // suma de lotes activos; nil si el producto no maneja lotes
	Consistent    bool
	Discrepancies []Discrepancy
}

// LedgerUseCase consulta y auditoría del ledger de movimientos.
type LedgerUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	pageSize    int
}

// NewLedgerUseCase pageSize <= 0 usa 100.
func NewLedgerUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, lotRepo repository.LotRepository, pageSize int) *LedgerUseCase {
	if pageSize <= 0 {
		pageSize = defaultLedgerLimit
	}
	return &LedgerUseCase{movRepo: movRepo, productRepo: productRepo, lotRepo: lotRepo, pageSize: pageSize}
}

func (uc *LedgerUseCase) requireProduct(ctx context.Context, productID, venueID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetActive(ctx, productID, venueID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return product, nil
}

// ListByProduct movimientos del producto en orden de creación.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID, venueID string) ([]*entity.StockMovement, error) {
	if _, err := uc.requireProduct(ctx, productID, venueID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByProduct(ctx, productID, venueID)
}

// GetMovement movimiento por id dentro del venue.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id, venueID string) (*entity.StockMovement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id, venueID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return mov, nil
}

// ListByVenue últimos movimientos del venue, más recientes primero.
func (uc *LedgerUseCase) ListByVenue(ctx context.Context, venueID string, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 || limit > uc.pageSize {
		limit = uc.pageSize
	}
	return uc.movRepo.ListByVenue(ctx, venueID, limit)
}

// Reconcile recorre el ledger en orden y verifica el encadenamiento de saldos contra current_stock
// y, si el producto maneja lotes, contra la suma de lotes activos.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, productID, venueID string) (*Reconciliation, error) {
	product, err := uc.requireProduct(ctx, productID, venueID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByProduct(ctx, productID, venueID)
	if err != nil {
		return nil, err
	}

	rec := &Reconciliation{
		ProductID:     productID,
		Movements:     len(movements),
		CurrentStock:  product.CurrentStock,
		Discrepancies: []Discrepancy{},
	}
	rec.LedgerStock, rec.Discrepancies = ReplayLedger(movements)

	if !rec.LedgerStock.Equal(product.CurrentStock) {
		rec.Discrepancies = append(rec.Discrepancies, Discrepancy{
			Detail: fmt.Sprintf("ledger suma %s, current_stock %s", rec.LedgerStock, product.CurrentStock),
		})
	}

	if product.TrackLots {
		lots, err := uc.lotRepo.ListActiveFEFO(ctx, productID)
		if err != nil {
			return nil, err
		}
		sum := decimal.Zero
		for _, l := range lots {
			sum = sum.Add(l.QtyCurrent)
		}
		rec.LotStock = &sum
		if !sum.Equal(product.CurrentStock) {
			rec.Discrepancies = append(rec.Discrepancies, Discrepancy{
				Detail: fmt.Sprintf("lotes activos suman %s, current_stock %s", sum, product.CurrentStock),
			})
		}
	}

	rec.Consistent = len(rec.Discrepancies) == 0
	return rec, nil
}

// ReplayLedger suma las cantidades en orden y reporta movimientos desbalanceados o que no encadenan
// con el saldo anterior. El primer movimiento debe partir de cero.
func ReplayLedger(movements []*entity.StockMovement) (decimal.Decimal, []Discrepancy) {
	var found []Discrepancy
	balance := decimal.Zero
	for _, m := range movements {
		if !m.QtyBefore.Equal(balance) {
			found = append(found, Discrepancy{
				MovementID: m.ID,
				Detail:     fmt.Sprintf("qty_before %s no coincide con el saldo previo %s", m.QtyBefore, balance),
			})
		}
		if !m.Balanced() {
			found = append(found, Discrepancy{
				MovementID: m.ID,
				Detail:     fmt.Sprintf("qty_after %s != qty_before %s + quantity %s", m.QtyAfter, m.QtyBefore, m.Quantity),
			})
		}
		balance = balance.Add(m.Quantity)
	}
	if found == nil {
		found = []Discrepancy{}
	}
	return balance, found
}
