package main

import (
	"context"

	bookingshandler "smarthost/internal/bookings/handler"
	bookingsrepo "smarthost/internal/bookings/repository"
	bookingsservice "smarthost/internal/bookings/service"
	bookingsvalidator "smarthost/internal/bookings/validator"
	"smarthost/internal/health"
	"smarthost/internal/payments/events"
	paymentshandler "smarthost/internal/payments/handler"
	paymentsservice "smarthost/internal/payments/service"
	"smarthost/internal/properties/cache"
	propertieshandler "smarthost/internal/properties/handler"
	propertiesrepo "smarthost/internal/properties/repository"
	propertiesservice "smarthost/internal/properties/service"
	reviewshandler "smarthost/internal/reviews/handler"
	reviewsrepo "smarthost/internal/reviews/repository"
	reviewsservice "smarthost/internal/reviews/service"
	reviewsvalidator "smarthost/internal/reviews/validator"
	usershandler "smarthost/internal/users/handler"
	usersrepo "smarthost/internal/users/repository"
	usersservice "smarthost/internal/users/service"
	"smarthost/pkg/app"
	"smarthost/pkg/client"
	"smarthost/pkg/config"
	"smarthost/pkg/contracts"
	"smarthost/pkg/kafka"
	kafka_config "smarthost/pkg/kafka/config"
	kafka_middleware "smarthost/pkg/kafka/middleware"
	"smarthost/pkg/presenter"
)

const ServiceName = "marketplace"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Marketplace service")

	clients := client.NewClient()
	if err := clients.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	propertyCache := cache.New(cfg.CacheMaxSize, cfg.CacheTTL, cfg.MemcachedHost, cfg.Log)
	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, clients, propertyCache, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(health.NewHandler(clients.Mongo, cfg.Log), handlers...)
	serverApp.OnShutdown(func(ctx context.Context) {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close payment publisher", "error", err)
		}
		propertyCache.Stop()
		if err := clients.Close(ctx); err != nil {
			cfg.Log.Error("Failed to close clients", "error", err)
		}
	})
	serverApp.Run()
}

func initHandlers(cfg *config.Config, clients *client.Client, propertyCache *cache.TwoLevelCache, publisher events.Publisher) []contracts.Handler {
	imagePresenter := presenter.New(cfg.ImageDomains)

	propertyRepo := propertiesrepo.NewMongoPropertyRepository(cfg, clients.Mongo)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg, clients.Mongo)
	lockRepo := bookingsrepo.NewBookingLockRepository(cfg, clients.Mongo)
	userRepo := usersrepo.NewMongoUserRepository(cfg, clients.Mongo)
	reviewRepo := reviewsrepo.NewMongoReviewRepository(cfg, clients.Mongo)

	propertyService := propertiesservice.NewPropertyService(propertyRepo, propertyCache, imagePresenter, cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		propertyRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		imagePresenter,
		cfg,
	)
	reviewService := reviewsservice.NewReviewService(
		reviewRepo,
		bookingRepo,
		userRepo,
		propertyCache,
		reviewsvalidator.NewReviewValidator(cfg.Log),
		cfg,
	)
	userService := usersservice.NewUserService(userRepo, cfg)

	paymentService, err := paymentsservice.NewPaymentService(cfg, paymentsservice.WithPublisher(publisher))
	if err != nil {
		cfg.Log.Fatal("Failed to initialize payment service", "error", err)
	}

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		propertieshandler.NewPropertyHandler(propertyService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, cfg.Log),
		usershandler.NewUserHandler(userService, cfg.Log),
		paymentshandler.NewPaymentHandler(paymentService, cfg.Log),
	}
}

// initPublisher falls back to a no-op publisher when payment events are
// disabled or the broker config is unusable. Payments never block on Kafka.
func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.PaymentEventsEnabled {
		cfg.Log.Info("Payment events disabled")
		return events.NopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Error("Invalid Kafka configuration, payment events disabled", "error", err)
		return events.NopPublisher{}
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.PaymentEventsTopic, cfg.PaymentEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, payment events disabled", "error", err)
		return events.NopPublisher{}
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.NewMetrics().ProducerMiddleware())
	}

	cfg.Log.Info("Payment events enabled", "topic", cfg.PaymentEventsTopic)
	return events.NewKafkaPublisher(producer, ServiceName)
}
