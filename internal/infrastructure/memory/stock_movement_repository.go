package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
)

type movementRepo struct {
	s  *Store
	tx *tx
}

func (r *movementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	stored := *movement
	stored.Metadata = movement.Metadata.Clone()
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, stored)
		r.tx.origins = append(r.tx.origins, movement)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	stored.Seq = r.s.seq
	movement.Seq = stored.Seq
	r.s.movements = append(r.s.movements, stored)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id, venueID string) (*entity.StockMovement, error) {
	for _, m := range r.snapshot() {
		if m.ID == id && m.VenueID == venueID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID, venueID string) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.snapshot() {
		if m.ProductID == productID && m.VenueID == venueID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByVenue(_ context.Context, venueID string, limit int) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.snapshot() {
		if m.VenueID == venueID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.After(out[j].MovementDate)
		}
		return out[i].Seq > out[j].Seq
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// snapshot copias del ledger confirmado en orden de inserción, seguido de lo pendiente en la transacción.
func (r *movementRepo) snapshot() []*entity.StockMovement {
	r.s.mu.RLock()
	out := make([]*entity.StockMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		c := m
		c.Metadata = m.Metadata.Clone()
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	if r.tx != nil {
		for _, m := range r.tx.movements {
			c := m
			out = append(out, &c)
		}
	}
	return out
}
