package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type productRepo struct {
	s  *Store
	tx *tx
}

func (r *productRepo) GetActive(_ context.Context, id, venueID string) (*entity.Product, error) {
	p, ok := r.s.productView(r.tx, id)
	if !ok || p.VenueID != venueID || !p.Active {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id, venueID string) (*entity.Product, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, "product:"+id); err != nil {
			return nil, err
		}
	}
	return r.GetActive(ctx, id, venueID)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, currentStock decimal.Decimal) error {
	if _, ok := r.s.productView(r.tx, id); !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if r.tx != nil {
		r.tx.stock[id] = currentStock
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	p.CurrentStock = currentStock
	r.s.products[id] = p
	return nil
}
