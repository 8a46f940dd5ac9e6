package provider

import (
	"github.com/vastrakart/vastrakart/internal/cache"
	"github.com/vastrakart/vastrakart/internal/config"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/queue"
	"github.com/vastrakart/vastrakart/internal/repository"
	"github.com/vastrakart/vastrakart/internal/service"
)

// Container wires repositories and services once at boot.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	CustomerRepo      repository.CustomerRepository
	StoreRepo         repository.StoreRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	DiscountRepo      repository.DiscountRepository
	OrderRepo         repository.OrderRepository
	CancelRequestRepo repository.CancelRequestRepository

	// Services
	AuthService          *service.AuthService
	EmailService         *service.EmailService
	DiscountService      *service.DiscountService
	CartService          *service.CartService
	OrderService         *service.OrderService
	ShipmentService      *service.ShipmentService
	CheckoutService      *service.CheckoutService
	CancelRequestService *service.CancelRequestService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CancelRequestRepo = repository.NewCancelRequestRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.CustomerRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.DiscountService = service.NewDiscountService(c.DiscountRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.DiscountService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.QueueClient)
	c.ShipmentService = service.NewShipmentService(c.OrderRepo, c.Config.Delhivery, c.Config.Shipping)
	c.CheckoutService = service.NewCheckoutService(
		models.DB,
		c.CartService,
		c.CartRepo,
		c.OrderRepo,
		c.ShipmentService,
		c.QueueClient,
		c.Config.Razorpay,
		c.Config.Shipping,
		c.Config.Store.SellerState,
	)
	c.CancelRequestService = service.NewCancelRequestService(
		models.DB,
		c.CancelRequestRepo,
		c.OrderRepo,
		c.QueueClient,
		c.Config.Cancellation.RefundWindowDays,
	)
}
