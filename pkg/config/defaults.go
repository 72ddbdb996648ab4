package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "smarthost"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultImageDomains = "example.com,images.unsplash.com,plus.unsplash.com"

	DefaultCardProcessingDelay = 2000 * time.Millisecond
	DefaultPixProcessingDelay  = 1500 * time.Millisecond
	DefaultPayPalCheckoutURL   = "https://paypal.com/checkout"
	DefaultPayPalReturnURL     = "http://localhost:3000/payment/success"
	DefaultCurrency            = "USD"

	DefaultCacheMaxSize = 1000
	DefaultCacheTTL     = 5 * time.Minute

	DefaultPaymentEventsEnabled  = false
	DefaultPaymentEventsTopic    = "smarthost.payments.events"
	DefaultPaymentEventsGroupID  = "smarthost-payments-worker"

	// DLQTopicSuffix names the dead-letter topic when none is configured.
	DLQTopicSuffix = ".dlq"

	DefaultPaginationLimit = 50
	DefaultPageSize        = 12
	DefaultFeaturedLimit   = 8
)
