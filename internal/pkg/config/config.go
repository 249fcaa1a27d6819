package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		OfferSweepInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Geocoder struct {
		BaseURL string
		Timeout time.Duration
	}

	Dispatch struct {
		TopK     int
		OfferTTL time.Duration
	}

	GeoFeed struct {
		FreshnessWindow time.Duration
	}

	Otp struct {
		Length         int
		ValidityWindow time.Duration
	}

	Kafka struct {
		Brokers       string
		Topic         string
		ConsumerGroup string
		Sarama        Sarama
		Handlers      KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderCreated OrderCreated
	}

	OrderCreated struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Geocoder Geocoder
		Dispatch Dispatch
		GeoFeed  GeoFeed
		Otp      Otp
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	offerSweepInterval, err := osGetEnvDuration("BACKGROUND_OFFER_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderCreatedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_CREATED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	geocoderTimeout, err := osGetEnvDuration("GEOCODER_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchTopK, err := osGetInt("DISPATCH_TOP_K")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchOfferTTL, err := osGetEnvDuration("DISPATCH_OFFER_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	freshnessWindow, err := osGetEnvDuration("LOCATION_FRESHNESS_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	otpLength, err := osGetInt("OTP_LENGTH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	otpValidityWindow, err := osGetEnvDuration("OTP_VALIDITY_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			OfferSweepInterval: offerSweepInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Geocoder: Geocoder{
			BaseURL: os.Getenv("GEOCODER_BASE_URL"),
			Timeout: geocoderTimeout,
		},
		Dispatch: Dispatch{
			TopK:     dispatchTopK,
			OfferTTL: dispatchOfferTTL,
		},
		GeoFeed: GeoFeed{
			FreshnessWindow: freshnessWindow,
		},
		Otp: Otp{
			Length:         otpLength,
			ValidityWindow: otpValidityWindow,
		},
		Kafka: Kafka{
			Brokers:       os.Getenv("KAFKA_BROKERS"),
			Topic:         os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup: os.Getenv("KAFKA_CONSUMER_GROUP"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderCreated: OrderCreated{
					ProcessTimeout: orderCreatedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.OfferSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_OFFER_SWEEP_INTERVAL is required")
	}

	if cfg.Geocoder.BaseURL == "" {
		return errors.New("GEOCODER_BASE_URL is required")
	}
	if cfg.Geocoder.Timeout == time.Duration(0) {
		return errors.New("GEOCODER_TIMEOUT is required")
	}

	if cfg.Dispatch.TopK == 0 {
		return errors.New("DISPATCH_TOP_K is required")
	}
	if cfg.Dispatch.OfferTTL == time.Duration(0) {
		return errors.New("DISPATCH_OFFER_TTL is required")
	}

	if cfg.GeoFeed.FreshnessWindow == time.Duration(0) {
		return errors.New("LOCATION_FRESHNESS_WINDOW is required")
	}

	if cfg.Otp.Length == 0 {
		return errors.New("OTP_LENGTH is required")
	}
	if cfg.Otp.ValidityWindow == time.Duration(0) {
		return errors.New("OTP_VALIDITY_WINDOW is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.OrderCreated.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_CREATED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
