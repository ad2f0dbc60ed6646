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

// LotSummary saldo de un lote activo.
type LotSummary struct {
	LotID          string
	LotNumber      string
	QtyCurrent     decimal.Decimal
	ExpirationDate *time.Time
	CostPrice      decimal.Decimal
}

// Summary vista de lectura del stock de un producto.
type Summary struct {
	ProductID    string
	ProductName  string
	SKU          string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	BelowMinimum bool
	TrackLots    bool
	Lots         []LotSummary
}

// SummaryUseCase lectura sin bloqueos.
type SummaryUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
}

func NewSummaryUseCase(productRepo repository.ProductRepository, lotRepo repository.LotRepository) *SummaryUseCase {
	return &SummaryUseCase{productRepo: productRepo, lotRepo: lotRepo}
}

// GetSummary devuelve el producto con sus lotes activos en orden FEFO (incluye lotes vacíos).
func (uc *SummaryUseCase) GetSummary(ctx context.Context, productID, venueID string) (*Summary, error) {
	product, err := uc.productRepo.GetActive(ctx, productID, venueID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	lots, err := uc.lotRepo.ListActiveFEFO(ctx, productID)
	if err != nil {
		return nil, err
	}
	inventory.SortFEFO(lots)

	out := &Summary{
		ProductID:    product.ID,
		ProductName:  product.Name,
		SKU:          product.SKU,
		CurrentStock: product.CurrentStock,
		MinimumStock: product.MinimumStock,
		BelowMinimum: product.BelowMinimum(),
		TrackLots:    product.TrackLots,
		Lots:         make([]LotSummary, 0, len(lots)),
	}
	for _, l := range lots {
		out.Lots = append(out.Lots, LotSummary{
			LotID:          l.ID,
			LotNumber:      l.LotNumber,
			QtyCurrent:     l.QtyCurrent,
			ExpirationDate: l.ExpirationDate,
			CostPrice:      l.CostPrice,
		})
	}
	return out, nil
}
