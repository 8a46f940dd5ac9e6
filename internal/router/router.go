package router

import (
	"fmt"
	"strings"

	"github.com/vastrakart/vastrakart/internal/cache"
	"github.com/vastrakart/vastrakart/internal/config"
	adminhandlers "github.com/vastrakart/vastrakart/internal/http/handlers/admin"
	publichandlers "github.com/vastrakart/vastrakart/internal/http/handlers/public"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vk"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, retry in %d seconds",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, retry in %d seconds",
	}
	verifyRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:verify", redisPrefix),
		WindowSeconds: cfg.Security.VerifyRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.VerifyRateLimit.MaxAttempts,
		Message:       "too many verification attempts, retry in %d seconds",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	storeScope := StoreMiddleware(c.StoreRepo, cfg.Store)

	apiV1 := r.Group("/api/v1")
	{
		// Storefront, shared by guests and logged-in customers.
		storefront := apiV1.Group("")
		storefront.Use(storeScope, OptionalCustomerJWTMiddleware(c.AuthService, c.CustomerRepo))
		{
			storefront.POST("/auth/register", publicHandler.Register)
			storefront.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)

			storefront.GET("/cart", publicHandler.GetCart)
			storefront.POST("/cart/items", publicHandler.AddCartItem)
			storefront.PUT("/cart/items", publicHandler.UpdateCartItem)
			storefront.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			storefront.DELETE("/cart", publicHandler.ClearCart)
			storefront.POST("/cart/tax", publicHandler.CalculateTax)
			storefront.POST("/cart/discount", publicHandler.ApplyOrRemoveDiscount)

			storefront.POST("/payments/intent", publicHandler.CreatePaymentIntent)
			storefront.POST("/payments/verify", RateLimitMiddleware(redisClient, verifyRule, KeyByIP), publicHandler.VerifyPayment)

			storefront.GET("/shipping/pincode/:pincode", publicHandler.CheckPincode)
		}

		// Customer-only surface.
		customer := apiV1.Group("")
		customer.Use(storeScope, CustomerJWTMiddleware(c.AuthService, c.CustomerRepo))
		{
			customer.GET("/orders", publicHandler.ListMyOrders)
			customer.GET("/orders/:order_no", publicHandler.GetMyOrder)
			customer.POST("/cancel-requests", publicHandler.CreateCancelRequest)
		}

		// Backoffice.
		admin := apiV1.Group("/admin")
		{
			admin.POST("/auth/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authed := admin.Group("")
			authed.Use(AdminJWTMiddleware(c.AuthService, c.AdminRepo))
			{
				authed.GET("/orders", adminHandler.ListOrders)
				authed.GET("/orders/:id", adminHandler.GetOrder)
				authed.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authed.PUT("/orders/:id/payment-status", adminHandler.UpdatePaymentStatus)
				authed.PUT("/orders/:id/tracking", adminHandler.UpdateTracking)
				authed.DELETE("/orders/:id", adminHandler.DeleteOrder)
				authed.POST("/orders/:id/shipment", adminHandler.CreateShipment)

				authed.GET("/cancel-requests", adminHandler.ListCancelRequests)
				authed.GET("/cancel-requests/:id", adminHandler.GetCancelRequest)
				authed.POST("/cancel-requests/:id/review", adminHandler.ReviewCancelRequest)

				authed.GET("/shipments/:waybill/track", adminHandler.TrackShipment)
				authed.DELETE("/shipments/:waybill", adminHandler.CancelShipment)
			}
		}
	}

	return r
}
