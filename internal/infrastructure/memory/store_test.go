package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Store {
	s := New()
	s.SeedProduct(entity.Product{ID: "p1", VenueID: "v1", Name: "Leche", SKU: "LEC-1", CurrentStock: decimal.NewFromInt(10), TrackLots: true, Active: true})
	return s
}

func TestRun_CommitMakesWritesVisible(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	err := s.Run(ctx, func(_ repository.StockMovementRepository, _ repository.LotRepository, pr repository.ProductRepository) error {
		p, err := pr.GetForUpdate(ctx, "p1", "v1")
		require.NoError(t, err)
		require.NotNil(t, p)
		require.NoError(t, pr.UpdateStock(ctx, p.ID, decimal.NewFromInt(7)))

		// la propia transacción ve su escritura; fuera todavía no
		own, _ := pr.GetActive(ctx, "p1", "v1")
		assert.True(t, own.CurrentStock.Equal(decimal.NewFromInt(7)))
		outside, _ := s.Products().GetActive(ctx, "p1", "v1")
		assert.True(t, outside.CurrentStock.Equal(decimal.NewFromInt(10)))
		return nil
	})
	require.NoError(t, err)

	p, err := s.Products().GetActive(ctx, "p1", "v1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(7)))
}

func TestRun_ErrorRollsBack(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(mr repository.StockMovementRepository, lr repository.LotRepository, pr repository.ProductRepository) error {
		require.NoError(t, pr.UpdateStock(ctx, "p1", decimal.Zero))
		require.NoError(t, lr.Create(ctx, &entity.Lot{ID: "l1", ProductID: "p1", LotNumber: "A", Active: true}))
		require.NoError(t, mr.Create(ctx, &entity.StockMovement{ID: "m1", VenueID: "v1", ProductID: "p1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := s.Products().GetActive(ctx, "p1", "v1")
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(10)))
	lot, _ := s.Lots().GetByID(ctx, "l1")
	assert.Nil(t, lot)
	movs, _ := s.Movements().ListByProduct(ctx, "p1", "v1")
	assert.Empty(t, movs)
}

func TestGetForUpdate_BlocksUntilCommit(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	locked := make(chan struct{})
	releaseFirst := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Run(ctx, func(_ repository.StockMovementRepository, _ repository.LotRepository, pr repository.ProductRepository) error {
			if _, err := pr.GetForUpdate(ctx, "p1", "v1"); err != nil {
				return err
			}
			close(locked)
			<-releaseFirst
			return pr.UpdateStock(ctx, "p1", decimal.NewFromInt(3))
		})
	}()
	<-locked

	secondSaw := make(chan decimal.Decimal, 1)
	go func() {
		_ = s.Run(ctx, func(_ repository.StockMovementRepository, _ repository.LotRepository, pr repository.ProductRepository) error {
			p, err := pr.GetForUpdate(ctx, "p1", "v1")
			if err != nil {
				return err
			}
			secondSaw <- p.CurrentStock
			return nil
		})
	}()

	select {
	case <-secondSaw:
		t.Fatal("la segunda transacción no debió obtener el bloqueo")
	case <-time.After(50 * time.Millisecond):
	}

	close(releaseFirst)
	require.NoError(t, <-firstDone)
	select {
	case qty := <-secondSaw:
		assert.True(t, qty.Equal(decimal.NewFromInt(3)), "debe ver el saldo confirmado por la primera")
	case <-time.After(time.Second):
		t.Fatal("la segunda transacción quedó bloqueada")
	}
}

func TestGetForUpdate_ContextCancelWhileWaiting(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.Run(ctx, func(_ repository.StockMovementRepository, _ repository.LotRepository, pr repository.ProductRepository) error {
			_, _ = pr.GetForUpdate(ctx, "p1", "v1")
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked
	defer close(release)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := s.Run(waitCtx, func(_ repository.StockMovementRepository, _ repository.LotRepository, pr repository.ProductRepository) error {
		_, err := pr.GetForUpdate(waitCtx, "p1", "v1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetForUpdate_Reentrant(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	err := s.Run(ctx, func(_ repository.StockMovementRepository, _ repository.LotRepository, pr repository.ProductRepository) error {
		for i := 0; i < 3; i++ {
			if _, err := pr.GetForUpdate(ctx, "p1", "v1"); err != nil {
				return err
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestGetActive_ScopedByVenue(t *testing.T) {
	s := seeded()
	p, err := s.Products().GetActive(context.Background(), "p1", "otro")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLotCreate_DuplicateNumber(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "l1", ProductID: "p1", LotNumber: "A", Active: true}))

	err := s.Lots().Create(ctx, &entity.Lot{ID: "l2", ProductID: "p1", LotNumber: "A", Active: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestListAvailableFEFO_Order(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := base.AddDate(0, 2, 0)
	sooner := base.AddDate(0, 1, 0)

	for _, l := range []entity.Lot{
		{ID: "sin-venc", LotNumber: "N", QtyCurrent: decimal.NewFromInt(5), CreatedAt: base},
		{ID: "tarde", LotNumber: "T", QtyCurrent: decimal.NewFromInt(5), ExpirationDate: &later, CreatedAt: base},
		{ID: "pronto", LotNumber: "P", QtyCurrent: decimal.NewFromInt(5), ExpirationDate: &sooner, CreatedAt: base},
		{ID: "vacio", LotNumber: "V", QtyCurrent: decimal.Zero, ExpirationDate: &sooner, CreatedAt: base},
	} {
		l.ProductID = "p1"
		l.Active = true
		require.NoError(t, s.Lots().Create(ctx, &l))
	}

	lots, err := s.Lots().ListAvailableFEFO(ctx, "p1")
	require.NoError(t, err)
	ids := make([]string, 0, len(lots))
	for _, l := range lots {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"pronto", "tarde", "sin-venc"}, ids)

	active, err := s.Lots().ListActiveFEFO(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, active, 4)
}

func TestMovementSeq_AssignedOnCommit(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	m1 := &entity.StockMovement{ID: "m1", VenueID: "v1", ProductID: "p1"}
	m2 := &entity.StockMovement{ID: "m2", VenueID: "v1", ProductID: "p1"}

	err := s.Run(ctx, func(mr repository.StockMovementRepository, _ repository.LotRepository, _ repository.ProductRepository) error {
		if err := mr.Create(ctx, m1); err != nil {
			return err
		}
		return mr.Create(ctx, m2)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m1.Seq)
	assert.Equal(t, int64(2), m2.Seq)

	movs, err := s.Movements().ListByVenue(ctx, "v1", 10)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "m2", movs[0].ID)
}
