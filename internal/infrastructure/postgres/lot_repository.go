package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LotRepository = (*LotRepo)(nil)

var lotColumns = []string{
	"id", "product_id", "lot_number", "qty_initial", "qty_current", "cost_price",
	"expiration_date", "production_date", "received_date", "supplier_reference",
	"notes", "metadata", "active", "created_at", "updated_at",
}

// fefoOrder orden de consumo: vence primero, sin vencimiento al final, luego FIFO.
var fefoOrder = []string{"expiration_date ASC NULLS LAST", "created_at ASC", "id ASC"}

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create inserta el lote. lot_number repetido -> domain.ErrDuplicate.
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	sql, args, err := psql.Insert("lots").
		Columns(lotColumns...).
		Values(l.ID, l.ProductID, l.LotNumber, l.QtyInitial, l.QtyCurrent, l.CostPrice,
			l.ExpirationDate, l.ProductionDate, l.ReceivedDate, l.SupplierReference,
			l.Notes, l.Metadata.OrEmpty(), l.Active, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el lote %s ya existe", domain.ErrDuplicate, l.LotNumber)
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

func (r *LotRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, op string) (*entity.Lot, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var l entity.Lot
	if err := pgxscan.Get(ctx, r.q, &l, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

func (r *LotRepo) list(ctx context.Context, q squirrel.SelectBuilder, op string) ([]*entity.Lot, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	lots := []*entity.Lot{}
	if err := pgxscan.Select(ctx, r.q, &lots, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lots, nil
}

// GetByID obtiene el lote (activo o no).
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	return r.getOne(ctx, psql.Select(lotColumns...).From("lots").Where(squirrel.Eq{"id": id}), "get lot")
}

// GetByLotNumber obtiene el lote por su número (único global).
func (r *LotRepo) GetByLotNumber(ctx context.Context, lotNumber string) (*entity.Lot, error) {
	return r.getOne(ctx, psql.Select(lotColumns...).From("lots").Where(squirrel.Eq{"lot_number": lotNumber}), "get lot by number")
}

// GetForUpdate obtiene el lote activo del producto y bloquea la fila.
func (r *LotRepo) GetForUpdate(ctx context.Context, id, productID string) (*entity.Lot, error) {
	q := psql.Select(lotColumns...).
		From("lots").
		Where(squirrel.Eq{"id": id, "product_id": productID, "active": true}).
		Suffix("FOR UPDATE")
	return r.getOne(ctx, q, "get lot for update")
}

// UpdateQuantity escribe qty_current.
func (r *LotRepo) UpdateQuantity(ctx context.Context, id string, qtyCurrent decimal.Decimal) error {
	return r.update(ctx, id, "update lot quantity", map[string]any{"qty_current": qtyCurrent})
}

// Deactivate baja lógica.
func (r *LotRepo) Deactivate(ctx context.Context, id string) error {
	return r.update(ctx, id, "deactivate lot", map[string]any{"active": false})
}

func (r *LotRepo) update(ctx context.Context, id, op string, set map[string]any) error {
	sql, args, err := psql.Update("lots").
		SetMap(set).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListAvailableFEFO lotes activos con stock en orden FEFO.
func (r *LotRepo) ListAvailableFEFO(ctx context.Context, productID string) ([]*entity.Lot, error) {
	q := psql.Select(lotColumns...).
		From("lots").
		Where(squirrel.Eq{"product_id": productID, "active": true}).
		Where(squirrel.Gt{"qty_current": 0}).
		OrderBy(fefoOrder...)
	return r.list(ctx, q, "list available lots")
}

// ListActiveFEFO lotes activos (incluye vacíos) en orden FEFO.
func (r *LotRepo) ListActiveFEFO(ctx context.Context, productID string) ([]*entity.Lot, error) {
	q := psql.Select(lotColumns...).
		From("lots").
		Where(squirrel.Eq{"product_id": productID, "active": true}).
		OrderBy(fefoOrder...)
	return r.list(ctx, q, "list active lots")
}

// ListExpiring lotes con stock de productos del venue que vencen hasta limit.
func (r *LotRepo) ListExpiring(ctx context.Context, venueID string, limit time.Time) ([]*entity.Lot, error) {
	cols := make([]string, 0, len(lotColumns))
	for _, c := range lotColumns {
		cols = append(cols, "l."+c)
	}
	q := psql.Select(cols...).
		From("lots l").
		Join("products p ON p.id = l.product_id").
		Where(squirrel.Eq{"p.venue_id": venueID, "l.active": true}).
		Where(squirrel.Gt{"l.qty_current": 0}).
		Where(squirrel.LtOrEq{"l.expiration_date": limit}).
		OrderBy("l.expiration_date ASC", "l.created_at ASC", "l.id ASC")
	return r.list(ctx, q, "list expiring lots")
}
