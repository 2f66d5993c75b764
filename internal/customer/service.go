package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*Customer, error)
	CreateCustomer(ctx context.Context, c *Customer) (int64, error)
	UpdateCustomer(ctx context.Context, id int64, upd CustomerUpdate) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list customers")
		return nil, fmt.Errorf("service: failed to list customers: %w", err)
	}

	return customers, nil
}

func (s *service) GetCustomerByID(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("customer_id", id).Msg("service: customer not found")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("service: failed to fetch customer")
		return nil, fmt.Errorf("service: failed to fetch customer by id: %w", err)
	}

	return c, nil
}

func (s *service) CreateCustomer(ctx context.Context, c *Customer) (int64, error) {
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn().Str("email", c.Email).Msg("service: email already registered")
			return 0, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create customer")
		return 0, fmt.Errorf("service: failed to create customer: %w", err)
	}

	log.Info().Int64("customer_id", id).Msg("service: customer registered")
	return id, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id int64, upd CustomerUpdate) error {
	err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmailExists) || errors.Is(err, ErrNoFieldsToUpdate) {
			return err
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("service: failed to update customer")
		return fmt.Errorf("service: failed to update customer: %w", err)
	}

	return nil
}

func (s *service) DeleteCustomer(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("service: failed to delete customer")
		return fmt.Errorf("service: failed to delete customer: %w", err)
	}

	return nil
}
