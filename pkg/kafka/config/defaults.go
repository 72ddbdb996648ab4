package kafka_config

import "time"

// Tuned for payment events: small JSON documents, one per checkout, read by a
// single worker group that must not skip anything published before it joined.
const (
	DefaultKafkaBrokers = "localhost:9092"
	DefaultClientID     = "smarthost"

	DefaultProducerMaxAttempts  = 5
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "none"
	DefaultProducerAsync        = false

	DefaultConsumerStartOffset       = -2 // oldest
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 1 << 20
	DefaultConsumerMaxWait           = 250 * time.Millisecond
	DefaultConsumerCommitInterval    = time.Second
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 15 * time.Second
	DefaultConsumerRebalanceTimeout  = 30 * time.Second

	// A handler error usually means a booking lock was held. Retries back off
	// linearly, so five of them span about three seconds before the DLQ.
	DefaultConsumerMaxRetries = 5

	DefaultEnableMiddleware = true
)
