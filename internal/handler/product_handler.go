package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/service"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

func NewProductHandler(catalog *service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if err == service.ErrProductExists {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Product already exists",
			})
			return
		}

		h.logger.Error("Failed to create product",
			zap.String("product_id", req.ProductID),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if err == service.ErrProductNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}

		h.logger.Error("Failed to get product",
			zap.String("product_id", productID),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get product",
		})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func toProductResponse(product *domain.Product) domain.ProductResponse {
	return domain.ProductResponse{
		ProductID:       product.ProductID,
		Name:            product.Name,
		Description:     product.Description,
		StockQty:        product.StockQty,
		SalePriceExVAT:  product.SalePriceExVAT,
		VATRate:         product.VATRate,
		SalePriceIncVAT: product.SalePriceIncVAT,
	}
}
