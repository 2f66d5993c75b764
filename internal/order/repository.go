package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	CreateOrder(ctx context.Context, customerID int64, items []LineItem) (*CreateResult, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// CreateOrder places an order as a single transaction: it validates and
// prices every requested line against the catalog, inserts the order
// header and its lines, and decrements stock. Product rows are locked
// with FOR UPDATE for the duration of the transaction, and the
// decrement itself is conditional on remaining stock, so stock can
// never go negative regardless of concurrent orders. Any failure rolls
// the whole order back.
func (r *postgresRepository) CreateOrder(ctx context.Context, customerID int64, items []LineItem) (result *CreateResult, err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Int64("customer_id", customerID).Msg("Panic recovered during CreateOrder, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Int64("customer_id", customerID).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Int64("customer_id", customerID).Msg("Failed to commit transaction")
				result = nil
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	// 1. Validate every line in submission order, locking each product
	// row and reading its price exactly once. The same price feeds the
	// total and the line snapshot below.
	prices := make(map[int64]float64, len(items))
	total := 0.0

	queryProduct := `SELECT price, stock FROM products WHERE id = $1 FOR UPDATE`
	for _, item := range items {
		var price float64
		var stock int
		err = tx.QueryRow(ctx, queryProduct, item.ProductID).Scan(&price, &stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = &ProductNotFoundError{ProductID: item.ProductID}
				return nil, err
			}
			return nil, fmt.Errorf("repository: failed to select product %d: %w", item.ProductID, err)
		}
		if stock < item.Quantity {
			err = &InsufficientStockError{ProductID: item.ProductID, Requested: item.Quantity, Available: stock}
			return nil, err
		}
		prices[item.ProductID] = price
		total += price * float64(item.Quantity)
	}

	// 2. Insert the order header.
	createdAt := time.Now().UTC()
	queryOrder := `
		INSERT INTO orders (customer_id, created_at, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var orderID int64
	err = tx.QueryRow(ctx, queryOrder, customerID, createdAt, total, string(StatusPending)).Scan(&orderID)
	if err != nil {
		if isForeignKeyViolation(err) {
			err = ErrCustomerNotFound
			return nil, err
		}
		return nil, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	// 3. Insert lines with the snapshotted price and decrement stock.
	// The decrement re-checks remaining stock so a zero-row update means
	// a concurrent transaction got there first.
	queryItem := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`
	queryStock := `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`

	for _, item := range items {
		_, err = tx.Exec(ctx, queryItem, orderID, item.ProductID, item.Quantity, prices[item.ProductID])
		if err != nil {
			return nil, fmt.Errorf("repository: failed to insert order item for order %d: %w", orderID, err)
		}

		var cmdTag pgconn.CommandTag
		cmdTag, err = tx.Exec(ctx, queryStock, item.Quantity, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to decrement stock for product %d: %w", item.ProductID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			err = &StockConflictError{ProductID: item.ProductID}
			return nil, err
		}
	}

	return &CreateResult{OrderID: orderID, Total: total}, nil
}

func (r *postgresRepository) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	queryOrder := `
		SELECT o.id, o.customer_id, o.created_at, o.total, o.status, c.name, c.email
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
		WHERE o.id = $1
	`

	var order Order
	err := r.db.QueryRow(ctx, queryOrder, orderID).Scan(
		&order.ID,
		&order.CustomerID,
		&order.CreatedAt,
		&order.Total,
		&order.Status,
		&order.CustomerName,
		&order.CustomerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %d: %w", orderID, err)
	}

	queryItems := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name, p.price
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	rows, err := r.db.Query(ctx, queryItems, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.ProductName,
			&item.ProductPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %d: %w", orderID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %d: %w", orderID, err)
	}

	order.Items = items

	return &order, nil
}

func (r *postgresRepository) ListOrders(ctx context.Context) ([]Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.created_at, o.total, o.status, c.name, c.email
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var order Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.CreatedAt,
			&order.Total,
			&order.Status,
			&order.CustomerName,
			&order.CustomerEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}

// DeleteOrder restores the stock consumed by every line of the order,
// then removes the lines and the header, all in one transaction.
// Deleting an order that does not exist is a no-op reported as success.
// order_items also cascade at the schema level; the explicit delete
// keeps the restore and the removal paired here.
func (r *postgresRepository) DeleteOrder(ctx context.Context, orderID int64) (err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Int64("order_id", orderID).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Int64("order_id", orderID).Msg("Failed to commit transaction")
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	rows, err := tx.Query(ctx, `SELECT product_id, quantity FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("repository: failed to query order items for order %d: %w", orderID, err)
	}

	type restore struct {
		productID int64
		quantity  int
	}
	restores := make([]restore, 0)
	for rows.Next() {
		var rst restore
		if err = rows.Scan(&rst.productID, &rst.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("repository: failed to scan order item for order %d: %w", orderID, err)
		}
		restores = append(restores, rst)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating order items for order %d: %w", orderID, err)
	}

	// Restore is a plain increment: stock only grows here, so no floor
	// check is needed.
	for _, rst := range restores {
		_, err = tx.Exec(ctx, `UPDATE products SET stock = stock + $1 WHERE id = $2`, rst.quantity, rst.productID)
		if err != nil {
			return fmt.Errorf("repository: failed to restore stock for product %d: %w", rst.productID, err)
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("repository: failed to delete order items for order %d: %w", orderID, err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("repository: failed to delete order %d: %w", orderID, err)
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
