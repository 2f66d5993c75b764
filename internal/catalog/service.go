package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) (int64, error)
	UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) error
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			log.Warn().Int64("product_id", id).Msg("service: product not found")
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product by id: %w", err)
	}

	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (int64, error) {
	if p.Price < 0 {
		return 0, errors.New("service: product price cannot be negative")
	}
	if p.Stock < 0 {
		return 0, errors.New("service: product stock cannot be negative")
	}

	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create product")
		return 0, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Int64("product_id", id).Str("name", p.Name).Msg("service: product created")
	return id, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) error {
	if upd.Price != nil && *upd.Price < 0 {
		return errors.New("service: product price cannot be negative")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return errors.New("service: product stock cannot be negative")
	}

	err := s.repo.UpdateProduct(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrNoFieldsToUpdate) {
			return err
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to update product")
		return fmt.Errorf("service: failed to update product: %w", err)
	}

	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}

	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list categories")
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}

	return categories, nil
}
