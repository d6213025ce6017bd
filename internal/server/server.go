package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"book-bazaar/internal/config"
	"book-bazaar/internal/handler"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
	"book-bazaar/internal/token"
)

type Server struct {
	echo   *echo.Echo
	tokens *token.Service
	rdb    *redis.Client
	cfg    config.Config

	authHandler    *handler.AuthHandler
	bookHandler    *handler.BookHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	addressHandler *handler.AddressHandler
	paymentHandler *handler.PaymentHandler
	cartHandler    *handler.CartHandler
}

func NewServer(
	cfg config.Config,
	tokens *token.Service,
	rdb *redis.Client,
	authService service.AuthService,
	bookService service.BookService,
	orderService service.OrderService,
	reviewService service.ReviewService,
	addressService service.AddressService,
	paymentService service.PaymentService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		tokens:         tokens,
		rdb:            rdb,
		cfg:            cfg,
		authHandler:    handler.NewAuthHandler(authService, cfg),
		bookHandler:    handler.NewBookHandler(bookService, rdb),
		orderHandler:   handler.NewOrderHandler(orderService),
		reviewHandler:  handler.NewReviewHandler(reviewService),
		addressHandler: handler.NewAddressHandler(addressService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		cartHandler:    handler.NewCartHandler(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/api/health", handler.Health)

	v1 := s.echo.Group("/api/v1")
	guard := middleware.Auth(s.tokens)
	admin := middleware.AdminOnly()

	// -------- auth --------
	auth := v1.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout, guard)
	auth.GET("/verify-email/:token", s.authHandler.VerifyEmail)
	auth.POST("/resend-verification-email", s.authHandler.ResendVerificationEmail)
	auth.POST("/forgot-password", s.authHandler.ForgotPassword)
	auth.POST("/reset-password/:token", s.authHandler.ResetPassword)
	auth.POST("/renew-refresh-token", s.authHandler.RenewRefreshToken)
	auth.POST("/rotate-api-key", s.authHandler.RotateApiKey, guard)
	auth.GET("/get-profile", s.authHandler.GetProfile, guard)

	// -------- books --------
	books := v1.Group("/books")
	books.POST("", s.bookHandler.Create, guard, admin)
	books.GET("", s.bookHandler.List, middleware.CacheGET(s.rdb, s.cfg.Cache.TTL))
	books.GET("/:bookId", s.bookHandler.GetByID)
	books.PUT("/:bookId", s.bookHandler.Update, guard, admin)
	books.DELETE("/:bookId", s.bookHandler.Delete, guard, admin)

	// reviews nested under books
	books.POST("/:bookId/reviews", s.reviewHandler.Create, guard)
	books.GET("/:bookId/reviews", s.reviewHandler.ListByBook)
	v1.DELETE("/reviews/:reviewId", s.reviewHandler.Delete, guard)

	// -------- orders --------
	orders := v1.Group("/orders", guard)
	orders.POST("", s.orderHandler.Create)
	orders.GET("", s.orderHandler.List)
	orders.GET("/:orderId", s.orderHandler.GetByID)
	orders.PUT("/:orderId/status", s.orderHandler.UpdateStatus, admin)

	// -------- addresses --------
	addresses := v1.Group("/addresses", guard)
	addresses.POST("", s.addressHandler.Create)
	addresses.GET("", s.addressHandler.List)
	addresses.PUT("/:addressId", s.addressHandler.Update)
	addresses.DELETE("/:addressId", s.addressHandler.Delete)

	// -------- payments --------
	payments := v1.Group("/payments", guard)
	payments.POST("/create", s.paymentHandler.Create)
	payments.POST("/verify", s.paymentHandler.Verify)
	payments.POST("/handle", s.paymentHandler.Handle)

	// -------- carts (stubbed) --------
	carts := v1.Group("/carts", guard)
	carts.GET("", s.cartHandler.Get)
	carts.DELETE("", s.cartHandler.Clear)
	carts.POST("/items", s.cartHandler.AddItem)
	carts.PUT("/items/:id", s.cartHandler.UpdateItem)
	carts.DELETE("/items/:id", s.cartHandler.RemoveItem)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
