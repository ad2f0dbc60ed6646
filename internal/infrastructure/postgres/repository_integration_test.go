//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Inventario-lotes/internal/application/inventory"
	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const venueID = "venue-1"

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("inventario_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	require.NoError(t, EnsureSchema(ctx, pool), "el esquema debe ser idempotente")
	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, id string, trackLots bool) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, NewProductRepository(pool).Create(context.Background(), &entity.Product{
		ID: id, VenueID: venueID, Name: "Producto " + id, SKU: "SKU-" + id,
		CurrentStock: decimal.Zero, MinimumStock: decimal.NewFromInt(1),
		TrackLots: trackLots, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestIntegration_LotIntakeAndFEFOConsumption(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	seedProduct(t, pool, "p1", true)

	runner := NewTxRunner(pool)
	products, lots, movements := NewProductRepository(pool), NewLotRepository(pool), NewStockMovementRepository(pool)
	engine := inventory.NewMovementEngine(runner, nil, nil)
	lotUC := inventory.NewLotUseCase(runner, engine, products, lots)
	allocator := inventory.NewAllocatorUseCase(products, lots, nil)
	fefo := inventory.NewFEFOMovementUseCase(allocator, engine, runner, true)
	ledger := inventory.NewLedgerUseCase(movements, products, lots, 100)

	receive := func(number string, qty int64, days int) *entity.Lot {
		exp := time.Now().UTC().AddDate(0, 0, days)
		lot, _, err := lotUC.ReceiveLot(ctx, inventory.ReceiveLotInput{
			VenueID: venueID, ProductID: "p1", LotNumber: number,
			QtyInitial: decimal.NewFromInt(qty), CostPrice: decimal.NewFromInt(2),
			ExpirationDate: &exp,
			Metadata:       entity.Metadata{"proveedor": entity.StringValue("ACME")},
		}, "user-1")
		require.NoError(t, err)
		return lot
	}
	in10 := receive("D10", 30, 10)
	in5 := receive("D5", 50, 5)
	receive("D60", 20, 60)

	_, _, err := lotUC.ReceiveLot(ctx, inventory.ReceiveLotInput{
		VenueID: venueID, ProductID: "p1", LotNumber: "D5", QtyInitial: decimal.NewFromInt(1),
	}, "user-1")
	require.ErrorIs(t, err, domain.ErrDuplicate)

	movs, err := fefo.ConsumeByFEFO(ctx, inventory.FEFOConsumeInput{
		ProductID: "p1", Quantity: decimal.NewFromInt(60), VenueID: venueID, UserID: "user-1",
	})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, in5.ID, *movs[0].LotID)
	assert.Equal(t, in10.ID, *movs[1].LotID)
	assert.Less(t, movs[0].Seq, movs[1].Seq)

	stored, err := lots.GetByID(ctx, in5.ID)
	require.NoError(t, err)
	assert.True(t, stored.QtyCurrent.IsZero())
	prov, _ := stored.Metadata["proveedor"].AsString()
	assert.Equal(t, "ACME", prov)

	rec, err := ledger.Reconcile(ctx, "p1", venueID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent, "%+v", rec.Discrepancies)
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(40)))
}

func TestIntegration_ConcurrentSalesRespectRowLocks(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	seedProduct(t, pool, "p1", false)

	runner := NewTxRunner(pool)
	engine := inventory.NewMovementEngine(runner, nil, nil)
	_, err := engine.ApplyMovement(ctx, inventory.MovementInput{
		VenueID: venueID, ProductID: "p1", MovementType: entity.MovementTypePurchase, Quantity: decimal.NewFromInt(100),
	}, "user-1")
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.ApplyMovement(ctx, inventory.MovementInput{
				VenueID: venueID, ProductID: "p1", MovementType: entity.MovementTypeSale, Quantity: decimal.NewFromInt(-30),
			}, "user-1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInvalidOperation) {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, 2, fail)
	p, err := NewProductRepository(pool).GetActive(ctx, "p1", venueID)
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(10)))
}

func TestIntegration_ConcurrentLotIntakeSameProduct(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	seedProduct(t, pool, "p1", true)

	runner := NewTxRunner(pool)
	products, lots, movements := NewProductRepository(pool), NewLotRepository(pool), NewStockMovementRepository(pool)
	engine := inventory.NewMovementEngine(runner, nil, nil)
	lotUC := inventory.NewLotUseCase(runner, engine, products, lots)
	ledger := inventory.NewLedgerUseCase(movements, products, lots, 100)

	const intakes = 8
	errs := make(chan error, intakes)
	var wg sync.WaitGroup
	for i := 0; i < intakes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			exp := time.Now().UTC().AddDate(0, 0, 10+i)
			_, _, err := lotUC.ReceiveLot(ctx, inventory.ReceiveLotInput{
				VenueID: venueID, ProductID: "p1", LotNumber: fmt.Sprintf("C-%d", i),
				QtyInitial: decimal.NewFromInt(5), CostPrice: decimal.NewFromInt(1),
				ExpirationDate: &exp,
			}, "user-1")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	p, err := products.GetActive(ctx, "p1", venueID)
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(5*intakes)))

	rec, err := ledger.Reconcile(ctx, "p1", venueID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent, "%+v", rec.Discrepancies)
}
