package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/stocbot/order-assistant/internal/events"
	"github.com/stocbot/order-assistant/internal/handler"
	"github.com/stocbot/order-assistant/internal/nlu"
	"github.com/stocbot/order-assistant/internal/repository"
	"github.com/stocbot/order-assistant/internal/service"
	"github.com/stocbot/order-assistant/pkg/config"
	"github.com/stocbot/order-assistant/pkg/middleware"
	pkgtls "github.com/stocbot/order-assistant/pkg/tls"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// Gateways
	productRepo := repository.NewProductRepository(dynamoClient, cfg.ProductTableName)
	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)
	conversationStore := repository.NewConversationStore(redisClient, cfg.ConversationTTL)
	registryClient := repository.NewRegistryClient(cfg.RegistryBaseURL)
	invoiceClient := repository.NewInvoiceClient(cfg.InvoiceServiceURL)
	nluClient := nlu.NewClient(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)

	var publisher service.EventPublisher
	if cfg.KafkaBrokers != "" {
		kafkaProducer := events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
	}

	// Core services
	pipeline := service.NewFulfillmentPipeline(
		productRepo,
		orderRepo,
		registryClient,
		invoiceClient,
		publisher,
		service.SellerInfo{Name: cfg.SellerName, TaxID: cfg.SellerTaxID},
		logger,
	)
	orchestrator := service.NewOrchestrator(
		nluClient,
		productRepo,
		orderRepo,
		conversationStore,
		pipeline,
		logger,
		cfg.LowStockThreshold,
		cfg.TaxIDPrefix,
		cfg.MaxResumeAttempts,
	)
	catalog := service.NewCatalogService(productRepo, productRepo, logger)

	chatHandler := handler.NewChatHandler(orchestrator, logger)
	productHandler := handler.NewProductHandler(catalog, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", chatHandler.HandleMessage)
		v1.POST("/products", productHandler.CreateProduct)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})
	}

	var tlsCfg pkgtls.TLSConfig
	if err := envconfig.Process("", &tlsCfg); err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	serverTLS, err := pkgtls.LoadTLSConfig(context.Background(), &tlsCfg, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: serverTLS,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var err error
		if serverTLS != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
