package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// OrderItemFilter captures order-item search parameters.
type OrderItemFilter struct {
	ProductName *string
	OrderID     *int64
}

// OrderItemRepository encapsulates order line persistence.
type OrderItemRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) error
	Update(ctx context.Context, item *domain.OrderItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.OrderItem, error)
	List(ctx context.Context) ([]domain.OrderItem, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	Search(ctx context.Context, filter OrderItemFilter) ([]domain.OrderItem, error)
}

type orderItemRepository struct {
	pool *pgxpool.Pool
}

// NewOrderItemRepository builds the repository.
func NewOrderItemRepository(pool *pgxpool.Pool) OrderItemRepository {
	return &orderItemRepository{pool: pool}
}

const orderItemColumns = `id, order_id, product_id, quantity, price_at_purchase, created_at, updated_at`

func (r *orderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	const query = `
        INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.PriceAtPurchase,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *orderItemRepository) Update(ctx context.Context, item *domain.OrderItem) error {
	const query = `
        UPDATE order_items SET order_id=$1, product_id=$2, quantity=$3, price_at_purchase=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.PriceAtPurchase,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderItemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM order_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderItemRepository) GetByID(ctx context.Context, id int64) (*domain.OrderItem, error) {
	var item domain.OrderItem
	if err := r.pool.QueryRow(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE id=$1`, id).Scan(
		&item.ID,
		&item.OrderID,
		&item.ProductID,
		&item.Quantity,
		&item.PriceAtPurchase,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) List(ctx context.Context) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderItemColumns+` FROM order_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderItems(rows)
}

func (r *orderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderItems(rows)
}

func (r *orderItemRepository) Search(ctx context.Context, filter OrderItemFilter) ([]domain.OrderItem, error) {
	base := `SELECT i.id, i.order_id, i.product_id, i.quantity, i.price_at_purchase, i.created_at, i.updated_at
             FROM order_items i JOIN products p ON p.id = i.product_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ProductName != nil && strings.TrimSpace(*filter.ProductName) != "" {
		args = append(args, strings.TrimSpace(*filter.ProductName))
		clauses = append(clauses, fmt.Sprintf("p.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.OrderID != nil {
		args = append(args, *filter.OrderID)
		clauses = append(clauses, fmt.Sprintf("i.order_id=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY i.id`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderItems(rows)
}

func scanOrderItems(rows pgx.Rows) ([]domain.OrderItem, error) {
	var result []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.PriceAtPurchase,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
