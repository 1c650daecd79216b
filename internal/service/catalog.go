package service

import (
	"context"
	"errors"
	"time"

	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

// CatalogService manages the product records the assistant sells from.
type CatalogService struct {
	inventory InventoryGateway
	creator   ProductCreator
	logger    *zap.Logger
}

// ProductCreator is the write side of the inventory store.
type ProductCreator interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
}

func NewCatalogService(inventory InventoryGateway, creator ProductCreator, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		inventory: inventory,
		creator:   creator,
		logger:    logger,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	existing, _ := s.inventory.GetProduct(ctx, req.ProductID)
	if existing != nil {
		return nil, ErrProductExists
	}

	grossUnit := ComputeTotals(req.SalePriceExVAT, req.VATRate)

	product := &domain.Product{
		ProductID:          req.ProductID,
		Name:               req.Name,
		Description:        req.Description,
		StockQty:           req.StockQty,
		PurchasePriceExVAT: req.PurchasePriceExVAT,
		SalePriceExVAT:     req.SalePriceExVAT,
		VATRate:            req.VATRate,
		SalePriceIncVAT:    grossUnit.GrossValue,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := s.creator.CreateProduct(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ProductID),
		zap.Int("initial_stock", product.StockQty))

	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.inventory.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
