package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"smarthost/pkg/logger"

	"github.com/joho/godotenv"
)

var (
	mongoURIRegex        = regexp.MustCompile(`^mongodb(\+srv)?://`)
	mongoCredentialRegex = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	currencyRegex        = regexp.MustCompile(`^[A-Z]{3}$`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	ImageDomains []string

	CardProcessingDelay time.Duration
	PixProcessingDelay  time.Duration
	PayPalCheckoutURL   string
	PayPalReturnURL     string
	DefaultCurrency     string

	CacheMaxSize  int
	CacheTTL      time.Duration
	MemcachedHost string

	PaymentEventsEnabled  bool
	PaymentEventsTopic    string
	PaymentEventsDLQTopic string
	PaymentEventsGroupID  string

	Log *logger.Logger
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present; real environment variables win.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	paymentsTopic := getEnvStr(EnvPaymentEventsTopic, DefaultPaymentEventsTopic)

	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		ImageDomains: getEnvList(EnvImageDomains, DefaultImageDomains),

		CardProcessingDelay: getEnvDuration(EnvCardProcessingDelay, DefaultCardProcessingDelay),
		PixProcessingDelay:  getEnvDuration(EnvPixProcessingDelay, DefaultPixProcessingDelay),
		PayPalCheckoutURL:   getEnvStr(EnvPayPalCheckoutURL, DefaultPayPalCheckoutURL),
		PayPalReturnURL:     getEnvStr(EnvPayPalReturnURL, DefaultPayPalReturnURL),
		DefaultCurrency:     getEnvStr(EnvDefaultCurrency, DefaultCurrency),

		CacheMaxSize:  getEnvNum(EnvCacheMaxSize, DefaultCacheMaxSize),
		CacheTTL:      getEnvDuration(EnvCacheTTL, DefaultCacheTTL),
		MemcachedHost: getEnvStr(EnvMemcachedHost, ""),

		PaymentEventsEnabled:  getEnvBool(EnvPaymentEventsEnabled, DefaultPaymentEventsEnabled),
		PaymentEventsTopic:    paymentsTopic,
		PaymentEventsDLQTopic: getEnvStr(EnvPaymentEventsDLQTopic, paymentsTopic+DLQTopicSuffix),
		PaymentEventsGroupID:  getEnvStr(EnvPaymentEventsGroupID, DefaultPaymentEventsGroupID),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	positiveDurations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"CacheTTL", cfg.CacheTTL},
	}
	for _, d := range positiveDurations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.CardProcessingDelay < 0 {
		errors = append(errors, fmt.Sprintf("CardProcessingDelay cannot be negative, got: %s", cfg.CardProcessingDelay))
	}
	if cfg.PixProcessingDelay < 0 {
		errors = append(errors, fmt.Sprintf("PixProcessingDelay cannot be negative, got: %s", cfg.PixProcessingDelay))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.CacheMaxSize <= 0 {
		errors = append(errors, fmt.Sprintf("CacheMaxSize must be positive, got: %d", cfg.CacheMaxSize))
	}

	if u, err := url.Parse(cfg.PayPalCheckoutURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("PayPalCheckoutURL must be an absolute URL, got: %s", cfg.PayPalCheckoutURL))
	}
	if u, err := url.Parse(cfg.PayPalReturnURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("PayPalReturnURL must be an absolute URL, got: %s", cfg.PayPalReturnURL))
	}
	if !currencyRegex.MatchString(cfg.DefaultCurrency) {
		errors = append(errors, fmt.Sprintf("DefaultCurrency must be a 3-letter ISO code, got: %s", cfg.DefaultCurrency))
	}

	if cfg.PaymentEventsEnabled {
		if cfg.PaymentEventsTopic == "" {
			errors = append(errors, "PaymentEventsTopic cannot be empty when payment events are enabled")
		}
		if cfg.PaymentEventsGroupID == "" {
			errors = append(errors, "PaymentEventsGroupID cannot be empty when payment events are enabled")
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"image_domains", cfg.ImageDomains,
		"card_processing_delay", cfg.CardProcessingDelay,
		"pix_processing_delay", cfg.PixProcessingDelay,
		"paypal_checkout_url", cfg.PayPalCheckoutURL,
		"paypal_return_url", cfg.PayPalReturnURL,
		"default_currency", cfg.DefaultCurrency,
		"cache_max_size", cfg.CacheMaxSize,
		"cache_ttl", cfg.CacheTTL,
		"memcached_enabled", cfg.MemcachedHost != "",
		"payment_events_enabled", cfg.PaymentEventsEnabled,
		"payment_events_topic", cfg.PaymentEventsTopic,
	)
}

// IsImageDomainAllowed reports whether host is on the remote image allowlist.
func (cfg *Config) IsImageDomainAllowed(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	for _, d := range cfg.ImageDomains {
		if strings.EqualFold(d, host) {
			return true
		}
	}
	return false
}

func redactMongoURI(uri string) string {
	return mongoCredentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return min(limit, DefaultPaginationLimit)
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
