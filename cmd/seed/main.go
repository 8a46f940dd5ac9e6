package main

import (
	"time"

	"github.com/vastrakart/vastrakart/internal/config"
	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/models"

	"github.com/shopspring/decimal"
)

func money(value string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}

func moneyPtr(value string) *models.Money {
	m := money(value)
	return &m
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("failed to seed default admin: %v", err)
	}

	store, err := models.InitDefaultStore(cfg.Store.Name, cfg.Store.LookupKey, cfg.Store.SellerState)
	if err != nil {
		stdLog.Fatalf("failed to seed default store: %v", err)
	}

	products := []models.Product{
		{
			StoreID:    store.ID,
			Name:       "Banarasi Silk Saree",
			Slug:       "banarasi-silk-saree",
			Price:      money("4999.00"),
			SalePrice:  moneyPtr("3999.00"),
			GSTPercent: money("5.00"),
			Images:     models.StringArray{"banarasi-silk-saree.jpg"},
			IsActive:   true,
			Variants: []models.ProductVariant{
				{
					SKU:        "SAREE-BAN-RED",
					Attributes: models.AttributePairs{{Key: "Colour", Value: "Red"}},
					IsActive:   true,
				},
				{
					SKU:        "SAREE-BAN-GRN",
					Attributes: models.AttributePairs{{Key: "Colour", Value: "Green"}},
					IsActive:   true,
				},
			},
		},
		{
			StoreID:    store.ID,
			Name:       "Men's Cotton Kurta",
			Slug:       "mens-cotton-kurta",
			Price:      money("1499.00"),
			GSTPercent: money("12.00"),
			Images:     models.StringArray{"mens-cotton-kurta.jpg"},
			IsActive:   true,
			Variants: []models.ProductVariant{
				{
					SKU:        "KURTA-COT-M",
					Attributes: models.AttributePairs{{Key: "Size", Value: "M"}},
					IsActive:   true,
				},
				{
					SKU:        "KURTA-COT-L",
					Attributes: models.AttributePairs{{Key: "Size", Value: "L"}},
					IsActive:   true,
				},
				{
					SKU:        "KURTA-COT-XL",
					Attributes: models.AttributePairs{{Key: "Size", Value: "XL"}},
					Price:      moneyPtr("1599.00"),
					IsActive:   true,
				},
			},
		},
		{
			StoreID:    store.ID,
			Name:       "Leather Jutti",
			Slug:       "leather-jutti",
			Price:      money("999.00"),
			GSTPercent: money("18.00"),
			Images:     models.StringArray{"leather-jutti.jpg"},
			IsActive:   true,
		},
	}

	for i := range products {
		product := &products[i]
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("product already exists: %s", product.Slug)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("created product: %s", product.Slug)
	}

	now := time.Now()
	endOfYear := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
	discounts := []models.Discount{
		{
			StoreID:           store.ID,
			Code:              "SAVE10",
			Type:              constants.DiscountTypePercentage,
			Value:             money("10.00"),
			MaxDiscountAmount: money("100.00"),
			EndsAt:            &endOfYear,
			IsActive:          true,
		},
		{
			StoreID:           store.ID,
			Code:              "FLAT200",
			Type:              constants.DiscountTypeFixed,
			Value:             money("200.00"),
			MinPurchaseAmount: money("1500.00"),
			EndsAt:            &endOfYear,
			IsActive:          true,
		},
	}

	for i := range discounts {
		discount := &discounts[i]
		var existing models.Discount
		if err := models.DB.Where("store_id = ? AND code = ?", discount.StoreID, discount.Code).First(&existing).Error; err == nil {
			stdLog.Printf("discount already exists: %s", discount.Code)
			continue
		}
		if err := models.DB.Create(discount).Error; err != nil {
			stdLog.Printf("failed to create discount %s: %v", discount.Code, err)
			continue
		}
		stdLog.Printf("created discount: %s", discount.Code)
	}

	stdLog.Printf("seed complete")
}
