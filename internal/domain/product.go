package domain

import (
	"time"
)

type Product struct {
	ProductID          string    `dynamodbav:"product_id" json:"product_id"`
	Name               string    `dynamodbav:"name" json:"name"`
	Description        string    `dynamodbav:"description" json:"description"`
	StockQty           int       `dynamodbav:"stock_qty" json:"stock_qty"`
	PurchasePriceExVAT float64   `dynamodbav:"purchase_price_ex_vat" json:"purchase_price_ex_vat"`
	SalePriceExVAT     float64   `dynamodbav:"sale_price_ex_vat" json:"sale_price_ex_vat"`
	VATRate            float64   `dynamodbav:"vat_rate" json:"vat_rate"`
	SalePriceIncVAT    float64   `dynamodbav:"sale_price_inc_vat" json:"sale_price_inc_vat"`
	CreatedAt          time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt          time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

type CreateProductRequest struct {
	ProductID          string  `json:"product_id" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	Description        string  `json:"description"`
	StockQty           int     `json:"stock_qty" binding:"min=0"`
	PurchasePriceExVAT float64 `json:"purchase_price_ex_vat"`
	SalePriceExVAT     float64 `json:"sale_price_ex_vat" binding:"required"`
	VATRate            float64 `json:"vat_rate" binding:"min=0,max=1"`
}

type ProductResponse struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	StockQty        int     `json:"stock_qty"`
	SalePriceExVAT  float64 `json:"sale_price_ex_vat"`
	VATRate         float64 `json:"vat_rate"`
	SalePriceIncVAT float64 `json:"sale_price_inc_vat"`
}
