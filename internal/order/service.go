package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	CreateOrder(ctx context.Context, customerID int64, items []LineItem) (*CreateResult, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrder(ctx context.Context, customerID int64, items []LineItem) (*CreateResult, error) {
	if len(items) == 0 {
		log.Warn().Int64("customer_id", customerID).Msg("service: attempt to create order with no items")
		return nil, ErrEmptyOrder
	}
	if customerID <= 0 {
		return nil, ErrCustomerNotFound
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("service: quantity for product %d must be at least 1", item.ProductID)
		}
	}

	result, err := s.repo.CreateOrder(ctx, customerID, items)
	if err != nil {
		if isDomainError(err) {
			log.Warn().Err(err).Int64("customer_id", customerID).Msg("service: order rejected")
			return nil, err
		}
		log.Error().Err(err).Int64("customer_id", customerID).Msg("service: failed to create order")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Int64("order_id", result.OrderID).
		Int64("customer_id", customerID).
		Float64("total", result.Total).
		Msg("service: order created")

	return result, nil
}

func (s *service) GetOrderByID(ctx context.Context, id int64) (*Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Int64("order_id", id).Msg("service: order not found")
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Int64("order_id", id).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}

	return order, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	return orders, nil
}

func (s *service) DeleteOrder(ctx context.Context, id int64) error {
	err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("order_id", id).Msg("service: failed to delete order")
		return fmt.Errorf("service: failed to delete order: %w", err)
	}

	log.Info().Int64("order_id", id).Msg("service: order deleted, stock restored")
	return nil
}

func isDomainError(err error) bool {
	var notFound *ProductNotFoundError
	var insufficient *InsufficientStockError
	var conflict *StockConflictError
	return errors.As(err, &notFound) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &conflict) ||
		errors.Is(err, ErrCustomerNotFound)
}
