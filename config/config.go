package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Session  SessionConfig  `yaml:"session"`
	Booking  BookingConfig  `yaml:"booking"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address    string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	SwaggerDir string `yaml:"swagger_dir" env:"HTTP_SWAGGER_DIR" env-default:"docs/swagger"`
}

type GRPCConfig struct {
	Address string `yaml:"address" env:"GRPC_ADDRESS" env-default:":9090"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"airlines"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"digitalairlines"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.MaxConns)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	BookingEventsTopic string   `yaml:"booking_events_topic" env:"KAFKA_BOOKING_EVENTS_TOPIC" env-default:"booking-events"`
	GroupID            string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"airlines-audit"`
	PublishRetries     int      `yaml:"publish_retries" env:"KAFKA_PUBLISH_RETRIES" env-default:"3"`
}

type SessionConfig struct {
	TTLMinutes      int    `yaml:"ttl_minutes" env:"SESSION_TTL_MINUTES" env-default:"5"`
	CookieName      string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"session"`
	TokenSecret     string `yaml:"token_secret" env:"SESSION_TOKEN_SECRET"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"SESSION_TOKEN_TTL_MINUTES" env-default:"60"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

func (s SessionConfig) TokenTTL() time.Duration {
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}

type BookingConfig struct {
	FlightsCacheTTL int `yaml:"flights_cache_ttl_seconds" env:"FLIGHTS_CACHE_TTL_SECONDS" env-default:"30"`
}

type StoreConfig struct {
	RetryAttempts    int `yaml:"retry_attempts" env:"STORE_RETRY_ATTEMPTS" env-default:"3"`
	RetryBaseDelayMS int `yaml:"retry_base_delay_ms" env:"STORE_RETRY_BASE_DELAY_MS" env-default:"50"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	File   string `yaml:"file" env:"LOG_FILE"`
}

type WorkerConfig struct {
	ReconcileIntervalMinutes int  `yaml:"reconcile_interval_minutes" env:"WORKER_RECONCILE_INTERVAL_MINUTES" env-default:"10"`
	RepairDrift              bool `yaml:"repair_drift" env:"WORKER_REPAIR_DRIFT" env-default:"false"`
}

// LoadConfig reads the YAML file at path; environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Address == "" {
		errs = append(errs, errors.New("http.address is required"))
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "memory" {
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Session.TokenSecret == "" {
		errs = append(errs, errors.New("session.token_secret is required"))
	}
	if c.Session.TTLMinutes <= 0 {
		errs = append(errs, errors.New("session.ttl_minutes must be positive"))
	}
	if c.Kafka.PublishRetries < 1 {
		errs = append(errs, errors.New("kafka.publish_retries must be at least 1"))
	}
	if c.Store.RetryAttempts < 1 {
		errs = append(errs, errors.New("store.retry_attempts must be at least 1"))
	}
	return errors.Join(errs...)
}
