package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMovement_RecordsLedgerEntry(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", false)
	f.stock(t, "p1", 40)

	cost := decimal.RequireFromString("1.25")
	mov, err := f.engine.ApplyMovement(context.Background(), MovementInput{
		VenueID:      venueID,
		ProductID:    "p1",
		MovementType: entity.MovementTypeSale,
		Quantity:     dec(-8),
		UnitCost:     &cost,
		Reference:    "SO-1",
		Metadata:     entity.Metadata{"canal": entity.StringValue("pos")},
	}, userID)
	require.NoError(t, err)

	assert.True(t, mov.QtyBefore.Equal(dec(40)))
	assert.True(t, mov.QtyAfter.Equal(dec(32)))
	assert.True(t, mov.Balanced())
	assert.Equal(t, userID, mov.UserID)
	assert.Nil(t, mov.LotID)
	require.NotNil(t, mov.TotalCost)
	assert.True(t, mov.TotalCost.Equal(dec(10)))
	assert.False(t, mov.MovementDate.IsZero())
	canal, _ := mov.Metadata["canal"].AsString()
	assert.Equal(t, "pos", canal)

	assert.True(t, f.currentStock(t, "p1").Equal(dec(32)))
	f.requireConsistent(t, "p1")
}

func TestApplyMovement_RejectsNegativeStock(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", false)
	f.stock(t, "p1", 5)

	_, err := f.engine.ApplyMovement(context.Background(), MovementInput{
		VenueID:      venueID,
		ProductID:    "p1",
		MovementType: entity.MovementTypeSale,
		Quantity:     dec(-6),
	}, userID)

	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.True(t, f.currentStock(t, "p1").Equal(dec(5)))
	movs, _ := f.ledger.ListByProduct(context.Background(), "p1", venueID)
	assert.Len(t, movs, 1)

	last := f.observer.movements[len(f.observer.movements)-1]
	assert.False(t, last.Success)
	assert.Equal(t, ErrorKindInvalidOperation, last.ErrorKind)
}

func TestApplyMovement_RejectsNegativeLotEvenWithProductStock(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	small := f.receive(t, "p1", "A", 5, 10)
	f.receive(t, "p1", "B", 20, 20)

	_, err := f.engine.ApplyMovement(context.Background(), MovementInput{
		VenueID:      venueID,
		ProductID:    "p1",
		LotID:        small.ID,
		MovementType: entity.MovementTypeWaste,
		Quantity:     dec(-10),
	}, userID)

	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.True(t, f.currentStock(t, "p1").Equal(dec(25)))
	assert.True(t, f.lotQty(t, small.ID).Equal(dec(5)))
	f.requireConsistent(t, "p1")
}

func TestApplyMovement_LotRequirementFollowsTrackLots(t *testing.T) {
	f := newFixture(t, true)
	f.product("lotes", true)
	f.product("simple", false)
	lot := f.receive(t, "lotes", "A", 10, 30)
	f.stock(t, "simple", 10)

	tests := []struct {
		name      string
		productID string
		lotID     string
	}{
		{"producto con lotes sin lot_id", "lotes", ""},
		{"producto sin lotes con lot_id", "simple", lot.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.ApplyMovement(context.Background(), MovementInput{
				VenueID:      venueID,
				ProductID:    tt.productID,
				LotID:        tt.lotID,
				MovementType: entity.MovementTypeSale,
				Quantity:     dec(-3),
			}, userID)

			require.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.True(t, f.currentStock(t, tt.productID).Equal(dec(10)))
		})
	}

	assert.True(t, f.lotQty(t, lot.ID).Equal(dec(10)))
	f.requireConsistent(t, "lotes")
}

func TestApplyMovement_Validation(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", false)
	negative := dec(-1)

	tests := []struct {
		name   string
		input  MovementInput
		userID string
	}{
		{"cantidad cero", MovementInput{VenueID: venueID, ProductID: "p1", MovementType: entity.MovementTypeAdjustment, Quantity: decimal.Zero}, userID},
		{"tipo desconocido", MovementInput{VenueID: venueID, ProductID: "p1", MovementType: "robo", Quantity: dec(1)}, userID},
		{"costo negativo", MovementInput{VenueID: venueID, ProductID: "p1", MovementType: entity.MovementTypePurchase, Quantity: dec(1), UnitCost: &negative}, userID},
		{"sin usuario", MovementInput{VenueID: venueID, ProductID: "p1", MovementType: entity.MovementTypePurchase, Quantity: dec(1)}, ""},
		{"sin producto", MovementInput{VenueID: venueID, MovementType: entity.MovementTypePurchase, Quantity: dec(1)}, userID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.ApplyMovement(context.Background(), tt.input, tt.userID)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
	assert.True(t, f.currentStock(t, "p1").IsZero())
}

func TestApplyMovement_NotFound(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	f.product("p2", true)
	otherLot := f.receive(t, "p2", "X", 5, 5)

	tests := []struct {
		name  string
		input MovementInput
	}{
		{"producto inexistente", MovementInput{VenueID: venueID, ProductID: "nope", MovementType: entity.MovementTypePurchase, Quantity: dec(1)}},
		{"otro venue", MovementInput{VenueID: "venue-2", ProductID: "p1", MovementType: entity.MovementTypePurchase, Quantity: dec(1)}},
		{"lote de otro producto", MovementInput{VenueID: venueID, ProductID: "p1", LotID: otherLot.ID, MovementType: entity.MovementTypePurchase, Quantity: dec(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.ApplyMovement(context.Background(), tt.input, userID)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
	assert.True(t, f.currentStock(t, "p1").IsZero())
}

func TestApplyMovement_ConcurrentSales(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", false)
	f.stock(t, "p1", 100)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.ApplyMovement(context.Background(), MovementInput{
				VenueID:      venueID,
				ProductID:    "p1",
				MovementType: entity.MovementTypeSale,
				Quantity:     dec(-30),
			}, userID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrInvalidOperation):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, successes)
	assert.Equal(t, 2, rejected)
	assert.True(t, f.currentStock(t, "p1").Equal(dec(10)))
	f.requireConsistent(t, "p1")
}

func TestApplyMovement_LotsSumToCurrentStock(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	a := f.receive(t, "p1", "A", 10, 3)
	b := f.receive(t, "p1", "B", 15, 9)
	ctx := context.Background()

	steps := []struct {
		lotID string
		qty   int64
	}{
		{a.ID, -4}, {b.ID, -15}, {b.ID, 7}, {a.ID, -6}, {b.ID, -2},
	}
	for _, s := range steps {
		_, err := f.engine.ApplyMovement(ctx, MovementInput{
			VenueID:      venueID,
			ProductID:    "p1",
			LotID:        s.lotID,
			MovementType: entity.MovementTypeAdjustment,
			Quantity:     dec(s.qty),
		}, userID)
		require.NoError(t, err)

		sum := f.lotQty(t, a.ID).Add(f.lotQty(t, b.ID))
		require.True(t, sum.Equal(f.currentStock(t, "p1")))
	}
	assert.True(t, f.currentStock(t, "p1").Equal(dec(5)))
	f.requireConsistent(t, "p1")
}

func TestApplyMovement_ObserverReportsSuccess(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", false)

	f.stock(t, "p1", 3)

	require.Len(t, f.observer.movements, 1)
	got := f.observer.movements[0]
	assert.True(t, got.Success)
	assert.Equal(t, venueID, got.VenueID)
	assert.Equal(t, entity.MovementTypePurchase, got.MovementType)
	assert.Empty(t, got.ErrorKind)
}
