package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"id", "venue_id", "name", "sku", "current_stock", "minimum_stock",
	"track_lots", "active", "created_at", "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create alta de producto (datos maestros; el stock inicial entra por movimientos).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	sql, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.VenueID, p.Name, p.SKU, p.CurrentStock, p.MinimumStock, p.TrackLots, p.Active, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, id, venueID string, forUpdate bool) (*entity.Product, error) {
	q := psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id, "venue_id": venueID, "active": true})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		if forUpdate {
			return nil, fmt.Errorf("get product for update: %w", err)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetActive obtiene el producto activo del venue.
func (r *ProductRepo) GetActive(ctx context.Context, id, venueID string) (*entity.Product, error) {
	return r.get(ctx, id, venueID, false)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id, venueID string) (*entity.Product, error) {
	return r.get(ctx, id, venueID, true)
}

// UpdateStock escribe current_stock.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error {
	sql, args, err := psql.Update("products").
		Set("current_stock", currentStock).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}
