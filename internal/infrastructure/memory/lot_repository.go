package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

type lotRepo struct {
	s  *Store
	tx *tx
}

func (r *lotRepo) Create(_ context.Context, lot *entity.Lot) error {
	if existing, _ := r.GetByLotNumber(context.Background(), lot.LotNumber); existing != nil {
		return fmt.Errorf("%w: el lote %s ya existe", domain.ErrDuplicate, lot.LotNumber)
	}
	stored := *lot
	stored.Metadata = lot.Metadata.Clone()
	if r.tx != nil {
		r.tx.newLots[lot.ID] = stored
		r.tx.newLotOrder = append(r.tx.newLotOrder, lot.ID)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lots[lot.ID] = stored
	return nil
}

func (r *lotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	lot, ok := r.s.lotView(r.tx, id)
	if !ok {
		return nil, nil
	}
	return &lot, nil
}

func (r *lotRepo) GetByLotNumber(_ context.Context, lotNumber string) (*entity.Lot, error) {
	for _, id := range r.s.lotIDs(r.tx) {
		if lot, ok := r.s.lotView(r.tx, id); ok && lot.LotNumber == lotNumber {
			return &lot, nil
		}
	}
	return nil, nil
}

func (r *lotRepo) GetForUpdate(ctx context.Context, id, productID string) (*entity.Lot, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, "lot:"+id); err != nil {
			return nil, err
		}
	}
	lot, ok := r.s.lotView(r.tx, id)
	if !ok || lot.ProductID != productID || !lot.Active {
		return nil, nil
	}
	return &lot, nil
}

func (r *lotRepo) UpdateQuantity(_ context.Context, id string, qtyCurrent decimal.Decimal) error {
	if _, ok := r.s.lotView(r.tx, id); !ok {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	if r.tx != nil {
		r.tx.lotQty[id] = qtyCurrent
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot := r.s.lots[id]
	lot.QtyCurrent = qtyCurrent
	r.s.lots[id] = lot
	return nil
}

func (r *lotRepo) Deactivate(_ context.Context, id string) error {
	if _, ok := r.s.lotView(r.tx, id); !ok {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	if r.tx != nil {
		r.tx.deactivated[id] = struct{}{}
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot := r.s.lots[id]
	lot.Active = false
	r.s.lots[id] = lot
	return nil
}

func (r *lotRepo) ListAvailableFEFO(_ context.Context, productID string) ([]*entity.Lot, error) {
	return r.list(func(l *entity.Lot) bool { return l.ProductID == productID && l.Available() }), nil
}

func (r *lotRepo) ListActiveFEFO(_ context.Context, productID string) ([]*entity.Lot, error) {
	return r.list(func(l *entity.Lot) bool { return l.ProductID == productID && l.Active }), nil
}

func (r *lotRepo) ListExpiring(_ context.Context, venueID string, limit time.Time) ([]*entity.Lot, error) {
	return r.list(func(l *entity.Lot) bool {
		p, ok := r.s.productView(r.tx, l.ProductID)
		return ok && p.VenueID == venueID && l.Available() && l.ExpiresWithin(limit)
	}), nil
}

// list filtra y devuelve en orden FEFO, igual que el ORDER BY de PostgreSQL.
func (r *lotRepo) list(keep func(*entity.Lot) bool) []*entity.Lot {
	out := []*entity.Lot{}
	for _, id := range r.s.lotIDs(r.tx) {
		lot, ok := r.s.lotView(r.tx, id)
		if ok && keep(&lot) {
			out = append(out, &lot)
		}
	}
	inventory.SortFEFO(out)
	return out
}
