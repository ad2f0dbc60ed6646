package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// movementInsertColumns seq lo asigna la secuencia.
var movementInsertColumns = []string{
	"id", "venue_id", "product_id", "lot_id", "user_id", "movement_type",
	"quantity", "qty_before", "qty_after", "unit_cost", "total_cost",
	"reference", "notes", "metadata", "movement_date", "created_at",
}

var movementColumns = append([]string{"seq"}, movementInsertColumns...)

// StockMovementRepo ledger de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento y completa Seq con el valor asignado por la secuencia.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	sql, args, err := psql.Insert("stock_movements").
		Columns(movementInsertColumns...).
		Values(m.ID, m.VenueID, m.ProductID, m.LotID, m.UserID, m.MovementType,
			m.Quantity, m.QtyBefore, m.QtyAfter, m.UnitCost, m.TotalCost,
			m.Reference, m.Notes, m.Metadata.OrEmpty(), m.MovementDate, m.CreatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&m.Seq); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID movimiento del venue; nil, nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id, venueID string) (*entity.StockMovement, error) {
	sql, args, err := psql.Select(movementColumns...).
		From("stock_movements").
		Where(squirrel.Eq{"id": id, "venue_id": venueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var m entity.StockMovement
	if err := pgxscan.Get(ctx, r.q, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByProduct movimientos del producto en orden de inserción.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID, venueID string) ([]*entity.StockMovement, error) {
	q := psql.Select(movementColumns...).
		From("stock_movements").
		Where(squirrel.Eq{"product_id": productID, "venue_id": venueID}).
		OrderBy("seq ASC")
	return r.list(ctx, q)
}

// ListByVenue últimos movimientos del venue.
func (r *StockMovementRepo) ListByVenue(ctx context.Context, venueID string, limit int) ([]*entity.StockMovement, error) {
	q := psql.Select(movementColumns...).
		From("stock_movements").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("movement_date DESC", "seq DESC").
		Limit(uint64(limit))
	return r.list(ctx, q)
}

func (r *StockMovementRepo) list(ctx context.Context, q squirrel.SelectBuilder) ([]*entity.StockMovement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	movements := []*entity.StockMovement{}
	if err := pgxscan.Select(ctx, r.q, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return movements, nil
}
