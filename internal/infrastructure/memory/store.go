// Package memory implementa los repositorios de stock en memoria con la misma semántica
// transaccional que PostgreSQL: bloqueos de fila hasta Commit/Rollback y escrituras diferidas.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store estado confirmado. Las transacciones leen este estado más sus propias escrituras pendientes.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	lots      map[string]entity.Lot
	movements []entity.StockMovement
	seq       int64

	locksMu sync.Mutex
	locks   map[string]chan struct{}
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		lots:     make(map[string]entity.Lot),
		locks:    make(map[string]chan struct{}),
	}
}

// SeedProduct inserta o reemplaza un producto (datos maestros; no pasa por el ledger).
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// Products repositorio fuera de transacción (lecturas del estado confirmado).
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Lots repositorio fuera de transacción.
func (s *Store) Lots() repository.LotRepository { return &lotRepo{s: s} }

// Movements repositorio fuera de transacción.
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{s: s} }

// Run ejecuta fn en una transacción: Commit si fn devuelve nil, Rollback en cualquier otro caso (incluido panic).
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
) error) error {
	t := newTx(s)
	defer t.release()

	if err := fn(&movementRepo{s: s, tx: t}, &lotRepo{s: s, tx: t}, &productRepo{s: s, tx: t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

func (s *Store) rowLock(key string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	ch, ok := s.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[key] = ch
	}
	return ch
}

// tx escrituras pendientes y bloqueos tomados por una transacción.
type tx struct {
	s           *Store
	held        map[string]chan struct{}
	stock       map[string]decimal.Decimal
	lotQty      map[string]decimal.Decimal
	newLots     map[string]entity.Lot
	newLotOrder []string
	deactivated map[string]struct{}
	movements   []entity.StockMovement
	origins     []*entity.StockMovement // punteros del caller, reciben Seq al confirmar
}

func newTx(s *Store) *tx {
	return &tx{
		s:           s,
		held:        make(map[string]chan struct{}),
		stock:       make(map[string]decimal.Decimal),
		lotQty:      make(map[string]decimal.Decimal),
		newLots:     make(map[string]entity.Lot),
		deactivated: make(map[string]struct{}),
	}
}

// lock equivalente a SELECT ... FOR UPDATE: espera al dueño actual o a que ctx expire. Es reentrante.
func (t *tx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	ch := t.s.rowLock(key)
	select {
	case ch <- struct{}{}:
		t.held[key] = ch
		return nil
	case <-ctx.Done():
		return fmt.Errorf("esperando bloqueo de %s: %w", key, ctx.Err())
	}
}

func (t *tx) release() {
	for key, ch := range t.held {
		<-ch
		delete(t.held, key)
	}
}

func (t *tx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range t.newLotOrder {
		lot := t.newLots[id]
		for _, existing := range s.lots {
			if existing.LotNumber == lot.LotNumber {
				return fmt.Errorf("%w: el lote %s ya existe", domain.ErrDuplicate, lot.LotNumber)
			}
		}
	}

	for _, id := range t.newLotOrder {
		s.lots[id] = t.newLots[id]
	}
	for id, qty := range t.lotQty {
		if lot, ok := s.lots[id]; ok {
			lot.QtyCurrent = qty
			s.lots[id] = lot
		}
	}
	for id := range t.deactivated {
		if lot, ok := s.lots[id]; ok {
			lot.Active = false
			s.lots[id] = lot
		}
	}
	for id, qty := range t.stock {
		if p, ok := s.products[id]; ok {
			p.CurrentStock = qty
			s.products[id] = p
		}
	}
	for i, m := range t.movements {
		s.seq++
		m.Seq = s.seq
		t.origins[i].Seq = m.Seq
		s.movements = append(s.movements, m)
	}
	return nil
}

// productView producto confirmado con el saldo pendiente de t aplicado. t puede ser nil.
func (s *Store) productView(t *tx, id string) (entity.Product, bool) {
	s.mu.RLock()
	p, ok := s.products[id]
	s.mu.RUnlock()
	if !ok {
		return entity.Product{}, false
	}
	if t != nil {
		if qty, ok := t.stock[id]; ok {
			p.CurrentStock = qty
		}
	}
	return p, true
}

func (s *Store) lotView(t *tx, id string) (entity.Lot, bool) {
	var (
		lot entity.Lot
		ok  bool
	)
	if t != nil {
		lot, ok = t.newLots[id]
	}
	if !ok {
		s.mu.RLock()
		lot, ok = s.lots[id]
		s.mu.RUnlock()
	}
	if !ok {
		return entity.Lot{}, false
	}
	if t != nil {
		if qty, ok := t.lotQty[id]; ok {
			lot.QtyCurrent = qty
		}
		if _, ok := t.deactivated[id]; ok {
			lot.Active = false
		}
	}
	lot.Metadata = lot.Metadata.Clone()
	return lot, true
}

// lotIDs ids confirmados más los creados en t.
func (s *Store) lotIDs(t *tx) []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.lots))
	for id := range s.lots {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	if t != nil {
		ids = append(ids, t.newLotOrder...)
	}
	return ids
}
