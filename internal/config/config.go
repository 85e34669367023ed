package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DemoAPIKey is NASA's shared, heavily rate-limited API key.
const DemoAPIKey = "DEMO_KEY"

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// NASA NeoWs catalog configuration.
	NeoWsAPIKey          string
	NeoWsEnabled         bool
	NeoWsBaseURL         string
	NeoWsTimeout         time.Duration
	NeoWsCacheSize       int
	NeoWsRequestsPerHour int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	neowsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("NEOWS_TIMEOUT", "5s"))
	if err != nil || neowsTimeout <= 0 {
		return nil, errors.New("invalid NEOWS_TIMEOUT")
	}

	apiKey := sharedcfg.EnvOrDefault("NEOWS_API_KEY", DemoAPIKey)

	requestsPerHour, err := parseRequestsPerHour(apiKey)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "impact-scenario-requests"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "impact-assessments"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "asteroid-impact-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		NeoWsAPIKey:          apiKey,
		NeoWsEnabled:         os.Getenv("NEOWS_ENABLED") != "false",
		NeoWsBaseURL:         sharedcfg.EnvOrDefault("NEOWS_BASE_URL", "https://api.nasa.gov/neo/rest/v1"),
		NeoWsTimeout:         neowsTimeout,
		NeoWsCacheSize:       parseCacheSize(),
		NeoWsRequestsPerHour: requestsPerHour,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.KafkaSourceTopic == cfg.KafkaSinkTopic {
		return nil, errors.New("KAFKA_SOURCE_TOPIC and KAFKA_SINK_TOPIC must differ")
	}
	if cfg.NeoWsEnabled {
		if u, err := url.Parse(cfg.NeoWsBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, errors.New("invalid NEOWS_BASE_URL")
		}
	}

	return cfg, nil
}

// parseRequestsPerHour reads NEOWS_REQUESTS_PER_HOUR. The default follows
// NASA's published limits: 30/hour for DEMO_KEY, 1000/hour for a personal key.
func parseRequestsPerHour(apiKey string) (int, error) {
	s := os.Getenv("NEOWS_REQUESTS_PER_HOUR")
	if s == "" {
		if apiKey == DemoAPIKey {
			return 30, nil
		}
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New("invalid NEOWS_REQUESTS_PER_HOUR: must be a positive integer")
	}
	return n, nil
}

func parseCacheSize() int {
	if s := os.Getenv("NEOWS_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
