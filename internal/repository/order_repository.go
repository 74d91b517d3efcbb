package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// OrderFilter captures purchase-order search parameters.
type OrderFilter struct {
	Username *string
	From     *time.Time
	To       *time.Time
}

// OrderRepository encapsulates purchase-order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.PurchaseOrder) error
	Update(ctx context.Context, order *domain.PurchaseOrder) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	List(ctx context.Context) ([]domain.PurchaseOrder, error)
	Search(ctx context.Context, filter OrderFilter) ([]domain.PurchaseOrder, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository builds the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, order_date, total_amount, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	const query = `
        INSERT INTO purchase_orders (user_id, order_date, total_amount)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.UserID,
		order.OrderDate,
		order.TotalAmount,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.PurchaseOrder) error {
	const query = `
        UPDATE purchase_orders SET user_id=$1, order_date=$2, total_amount=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		order.UserID,
		order.OrderDate,
		order.TotalAmount,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM purchase_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	if err := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id=$1`, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderDate,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.PurchaseOrder, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM purchase_orders ORDER BY order_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) Search(ctx context.Context, filter OrderFilter) ([]domain.PurchaseOrder, error) {
	base := `SELECT o.id, o.user_id, o.order_date, o.total_amount, o.created_at, o.updated_at
             FROM purchase_orders o JOIN users u ON u.id = o.user_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Username != nil && strings.TrimSpace(*filter.Username) != "" {
		args = append(args, strings.TrimSpace(*filter.Username))
		clauses = append(clauses, fmt.Sprintf("u.username ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("o.order_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("o.order_date <= $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.order_date DESC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.PurchaseOrder, error) {
	var result []domain.PurchaseOrder
	for rows.Next() {
		var order domain.PurchaseOrder
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.OrderDate,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
