package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"book-bazaar/internal/client"
	"book-bazaar/internal/config"
	"book-bazaar/internal/mail"
	"book-bazaar/internal/queue"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/server"
	"book-bazaar/internal/service"
	"book-bazaar/internal/token"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	rdb := client.InitRedisClient(cfg.Cache)

	tokens := token.NewService(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	mailer := mail.NewMailer(cfg.Mail, cfg.App)
	var mailPublisher service.MailPublisher
	publisher, err := queue.NewPublisher(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, sending mail inline: %v", err)
		mailPublisher = mail.DirectPublisher{Mailer: mailer}
	} else {
		defer publisher.Close()
		mailPublisher = publisher
		go queue.StartMailConsumer(cfg.RabbitMQURL, mailer)
	}

	userRepo := repository.NewUserRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	bookRepo := repository.NewBookRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	authService := service.NewAuthService(db, userRepo, apiKeyRepo, addressRepo, tokens, mailPublisher, cfg.Auth.BcryptCost)
	bookService := service.NewBookService(bookRepo)
	orderService := service.NewOrderService(db, orderRepo, bookRepo, addressRepo)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)
	addressService := service.NewAddressService(db, addressRepo)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo)

	srv := server.NewServer(cfg, tokens, rdb,
		authService, bookService, orderService, reviewService, addressService, paymentService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error:", err)
	}
}
