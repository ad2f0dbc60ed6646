package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	venueID = "venue-1"
	userID  = "user-1"
)

// recordingObserver guarda los reportes para aserciones.
type recordingObserver struct {
	mu          sync.Mutex
	movements   []MovementOutcome
	allocations []AllocationOutcome
}

func (o *recordingObserver) MovementApplied(_ context.Context, out MovementOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.movements = append(o.movements, out)
}

func (o *recordingObserver) AllocationPlanned(_ context.Context, out AllocationOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.allocations = append(o.allocations, out)
}

type fixture struct {
	store     *memory.Store
	observer  *recordingObserver
	engine    *MovementEngine
	allocator *AllocatorUseCase
	fefo      *FEFOMovementUseCase
	lots      *LotUseCase
	summary   *SummaryUseCase
	ledger    *LedgerUseCase
}

func newFixture(t *testing.T, atomic bool) *fixture {
	t.Helper()
	store := memory.New()
	obs := &recordingObserver{}
	engine := NewMovementEngine(store, obs, nil)
	allocator := NewAllocatorUseCase(store.Products(), store.Lots(), obs)
	return &fixture{
		store:     store,
		observer:  obs,
		engine:    engine,
		allocator: allocator,
		fefo:      NewFEFOMovementUseCase(allocator, engine, store, atomic),
		lots:      NewLotUseCase(store, engine, store.Products(), store.Lots()),
		summary:   NewSummaryUseCase(store.Products(), store.Lots()),
		ledger:    NewLedgerUseCase(store.Movements(), store.Products(), store.Lots(), 100),
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (f *fixture) product(id string, trackLots bool) {
	f.store.SeedProduct(entity.Product{
		ID:           id,
		VenueID:      venueID,
		Name:         "Producto " + id,
		SKU:          "SKU-" + id,
		CurrentStock: decimal.Zero,
		MinimumStock: dec(5),
		TrackLots:    trackLots,
		Active:       true,
	})
}

// receive ingresa un lote por el camino normal (lote + compra en el ledger).
func (f *fixture) receive(t *testing.T, productID, lotNumber string, qty int64, expiresInDays int) *entity.Lot {
	t.Helper()
	in := ReceiveLotInput{
		VenueID:    venueID,
		ProductID:  productID,
		LotNumber:  lotNumber,
		QtyInitial: dec(qty),
		CostPrice:  dec(3),
	}
	if expiresInDays >= 0 {
		exp := time.Now().UTC().AddDate(0, 0, expiresInDays)
		in.ExpirationDate = &exp
	}
	lot, _, err := f.lots.ReceiveLot(context.Background(), in, userID)
	require.NoError(t, err)
	return lot
}

// stock ingresa stock a un producto sin lotes.
func (f *fixture) stock(t *testing.T, productID string, qty int64) {
	t.Helper()
	_, err := f.engine.ApplyMovement(context.Background(), MovementInput{
		VenueID:      venueID,
		ProductID:    productID,
		MovementType: entity.MovementTypePurchase,
		Quantity:     dec(qty),
	}, userID)
	require.NoError(t, err)
}

func (f *fixture) currentStock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetActive(context.Background(), productID, venueID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) lotQty(t *testing.T, lotID string) decimal.Decimal {
	t.Helper()
	l, err := f.store.Lots().GetByID(context.Background(), lotID)
	require.NoError(t, err)
	require.NotNil(t, l)
	return l.QtyCurrent
}

func (f *fixture) requireConsistent(t *testing.T, productID string) {
	t.Helper()
	rec, err := f.ledger.Reconcile(context.Background(), productID, venueID)
	require.NoError(t, err)
	require.True(t, rec.Consistent, "discrepancias: %+v", rec.Discrepancies)
}
