package inventory

import (
	"context"
	"testing"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateFEFO_SingleLot(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	l := f.receive(t, "p1", "A", 100, 30)

	res, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(50), venueID)
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Allocations, 1)
	assert.Equal(t, l.ID, res.Allocations[0].LotID)
	assert.True(t, res.Allocations[0].Quantity.Equal(dec(50)))
	assert.True(t, res.TotalAllocated.Equal(dec(50)))
	assert.True(t, res.Shortfall.IsZero())
}

func TestAllocateFEFO_EarliestExpiryFirst(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	in10 := f.receive(t, "p1", "D10", 30, 10)
	in5 := f.receive(t, "p1", "D5", 50, 5)
	f.receive(t, "p1", "D60", 20, 60)

	res, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(60), venueID)
	require.NoError(t, err)

	require.True(t, res.Success)
	require.Len(t, res.Allocations, 2)
	assert.Equal(t, in5.ID, res.Allocations[0].LotID)
	assert.True(t, res.Allocations[0].Quantity.Equal(dec(50)))
	assert.Equal(t, in10.ID, res.Allocations[1].LotID)
	assert.True(t, res.Allocations[1].Quantity.Equal(dec(10)))
	assert.True(t, res.WeightedCost().Equal(dec(3)))
}

func TestAllocateFEFO_Shortfall(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	f.receive(t, "p1", "A", 50, 30)

	res, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(100), venueID)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.True(t, res.TotalAllocated.Equal(dec(50)))
	assert.True(t, res.Shortfall.Equal(dec(50)))
	require.Len(t, res.Allocations, 1)
	assert.True(t, res.Allocations[0].Quantity.Equal(dec(50)))
	assert.Contains(t, res.Message, "insuficiente")
}

func TestAllocateFEFO_NoLots(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)

	res, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(1), venueID)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Empty(t, res.Allocations)
	assert.Equal(t, "no hay lotes disponibles", res.Message)
}

func TestAllocateFEFO_Untracked(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", false)
	f.stock(t, "p1", 30)

	ok, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(30), venueID)
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Allocations)
	assert.True(t, ok.TotalAllocated.Equal(dec(30)))

	short, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(50), venueID)
	require.NoError(t, err)
	assert.False(t, short.Success)
	assert.Empty(t, short.Allocations)
	assert.True(t, short.TotalAllocated.IsZero(), "sin asignación parcial para productos sin lotes")
	assert.True(t, short.Shortfall.Equal(dec(20)))
}

func TestAllocateFEFO_InvalidQuantityBeforeRead(t *testing.T) {
	f := newFixture(t, true)

	for _, q := range []int64{0, -5} {
		_, err := f.allocator.AllocateFEFO(context.Background(), "nope", dec(q), venueID)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
	assert.Empty(t, f.observer.allocations)
}

func TestAllocateFEFO_ProductNotFound(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)

	_, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(1), "venue-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocateFEFO_NoWritesAndIdempotent(t *testing.T) {
	f := newFixture(t, true)
	f.product("p1", true)
	f.receive(t, "p1", "A", 7, 3)
	f.receive(t, "p1", "B", 9, -1)
	f.receive(t, "p1", "C", 4, 1)
	before, _ := f.ledger.ListByProduct(context.Background(), "p1", venueID)

	first, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(15), venueID)
	require.NoError(t, err)
	second, err := f.allocator.AllocateFEFO(context.Background(), "p1", dec(15), venueID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	after, _ := f.ledger.ListByProduct(context.Background(), "p1", venueID)
	assert.Len(t, after, len(before))
	assert.True(t, f.currentStock(t, "p1").Equal(dec(20)))
	assert.Len(t, f.observer.allocations, 2)
}
