// Package service implements the collection services used by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/okian/collections/internal/adapters/repository"
	"github.com/okian/collections/internal/domain/model"
	"github.com/okian/collections/pkg/logger"
	"github.com/okian/collections/pkg/metrics"
)

// ProductsCollection is the collection name used in logs and metrics.
const ProductsCollection = "products"

// ProductInput is the create payload. Pointers distinguish "absent" from zero values.
type ProductInput struct {
	Name  *string  `json:"name" validate:"required,min=1"`
	Price *float64 `json:"price" validate:"required,ne=0"`
}

// ProductService lists, creates and deletes products.
type ProductService struct {
	store    repository.Store[model.Product]
	validate *validator.Validate
	logger   logger.Logger
}

// NewProductService creates a product service over store.
func NewProductService(store repository.Store[model.Product], opts ...Option) *ProductService {
	o := newOptions(opts)
	return &ProductService{
		store:    store,
		validate: o.validate,
		logger:   o.logger.Named(ProductsCollection),
	}
}

// List returns all products in insertion order.
func (s *ProductService) List(ctx context.Context) []model.Product {
	products := s.store.List(ctx)
	metrics.RecordCollectionOperation(ProductsCollection, "list", outcomeOK)
	return products
}

// Create validates in and appends a product with the next id.
// A missing or empty name, and a missing or zero price, are ErrValidation.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (model.Product, error) {
	const op = "products.create"
	if err := s.validate.StructCtx(ctx, in); err != nil {
		metrics.RecordCollectionOperation(ProductsCollection, "create", outcomeInvalid)
		s.logger.Debug(ctx, "rejected product", logger.Error(err))
		return model.Product{}, WrapKind(op, ErrValidation, err)
	}

	p := s.store.Create(ctx, func(id int) model.Product {
		return model.Product{ID: id, Name: *in.Name, Price: *in.Price}
	})
	metrics.RecordCollectionOperation(ProductsCollection, "create", outcomeOK)
	s.logger.Info(ctx, "product created",
		logger.Int("id", p.ID),
		logger.String("name", p.Name),
		logger.Float64("price", p.Price),
	)
	return p, nil
}

// Delete removes the product with id.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	const op = "products.delete"
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordCollectionOperation(ProductsCollection, "delete", outcomeNotFound)
			return WrapKind(op, ErrNotFound, fmt.Errorf("product %d: %w", id, err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.RecordCollectionOperation(ProductsCollection, "delete", outcomeOK)
	s.logger.Info(ctx, "product deleted", logger.Int("id", id))
	return nil
}

// Stats reports the collection size and id counter.
func (s *ProductService) Stats(ctx context.Context) Stats {
	return Stats{
		Collection: ProductsCollection,
		Records:    s.store.Count(ctx),
		NextID:     s.store.NextID(ctx),
	}
}
