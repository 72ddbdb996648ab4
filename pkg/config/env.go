package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvImageDomains = "IMAGE_DOMAINS"

	EnvCardProcessingDelay = "CARD_PROCESSING_DELAY"
	EnvPixProcessingDelay  = "PIX_PROCESSING_DELAY"
	EnvPayPalCheckoutURL   = "PAYPAL_CHECKOUT_URL"
	EnvPayPalReturnURL     = "PAYPAL_RETURN_URL"
	EnvDefaultCurrency     = "DEFAULT_CURRENCY"

	EnvCacheMaxSize  = "CACHE_MAX_SIZE"
	EnvCacheTTL      = "CACHE_TTL"
	EnvMemcachedHost = "MEMCACHED_HOST"

	EnvPaymentEventsEnabled  = "PAYMENT_EVENTS_ENABLED"
	EnvPaymentEventsTopic    = "PAYMENT_EVENTS_TOPIC"
	EnvPaymentEventsDLQTopic = "PAYMENT_EVENTS_DLQ_TOPIC"
	EnvPaymentEventsGroupID  = "PAYMENT_EVENTS_GROUP_ID"
)
