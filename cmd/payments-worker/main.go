package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	bookingsrepo "smarthost/internal/bookings/repository"
	bookingsservice "smarthost/internal/bookings/service"
	bookingsvalidator "smarthost/internal/bookings/validator"
	paymentsrepo "smarthost/internal/payments/repository"
	"smarthost/internal/payments/worker"
	propertiesrepo "smarthost/internal/properties/repository"
	"smarthost/pkg/client"
	"smarthost/pkg/config"
	"smarthost/pkg/kafka"
	kafka_config "smarthost/pkg/kafka/config"
	kafka_middleware "smarthost/pkg/kafka/middleware"
	"smarthost/pkg/presenter"
)

const ServiceName = "payments-worker"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	clients := client.NewClient()
	if err := clients.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	bookingService := bookingsservice.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg, clients.Mongo),
		bookingsrepo.NewBookingLockRepository(cfg, clients.Mongo),
		propertiesrepo.NewMongoPropertyRepository(cfg, clients.Mongo),
		bookingsvalidator.NewBookingValidator(cfg.Log),
		presenter.New(cfg.ImageDomains),
		cfg,
	)
	paymentHandler := worker.NewPaymentHandler(
		bookingService,
		paymentsrepo.NewMongoPaymentRepository(cfg, clients.Mongo),
		cfg.Log,
	)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.PaymentEventsTopic,
		cfg.PaymentEventsGroupID,
		cfg.PaymentEventsDLQTopic,
		paymentHandler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting payments worker",
		"topic", cfg.PaymentEventsTopic,
		"group_id", cfg.PaymentEventsGroupID,
		"dlq_topic", cfg.PaymentEventsDLQTopic,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Shutting down payments worker", metrics.Snapshot().LogValues()...)

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := clients.Close(shutdownCtx); err != nil {
		cfg.Log.Error("Failed to close clients", "error", err)
	}
	cfg.Log.Info("Payments worker stopped")
}
