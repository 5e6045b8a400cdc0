package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Redis  RedisConfig
	Store  StoreConfig
	Engine EngineConfig
	Outbox OutboxConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"booking"`
	Password string `envconfig:"DB_PASSWORD" default:"booking"`
	DBName   string `envconfig:"DB_NAME" default:"booking"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret              string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"24h"`
}

// Empty Addr disables the Redis event publisher; outbox events are then logged.
type RedisConfig struct {
	Addr        string `envconfig:"REDIS_ADDR"`
	Password    string `envconfig:"REDIS_PASSWORD"`
	DB          int    `envconfig:"REDIS_DB" default:"0"`
	EventStream string `envconfig:"REDIS_EVENT_STREAM" default:"booking-events"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type EngineConfig struct {
	OperationTimeout       time.Duration `envconfig:"ENGINE_OPERATION_TIMEOUT" default:"5s"`
	RefundTimeout          time.Duration `envconfig:"ENGINE_REFUND_TIMEOUT" default:"5s"`
	ConfirmRequiresPayment bool          `envconfig:"ENGINE_CONFIRM_REQUIRES_PAYMENT" default:"true"`
	ConfirmAllowsPartial   bool          `envconfig:"ENGINE_CONFIRM_ALLOWS_PARTIAL" default:"true"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c StoreConfig) Validate() error {
	switch c.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Driver)
	}
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win over file values
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Store.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:              "test-secret",
			AccessTokenDuration: time.Hour,
		},
		Redis: RedisConfig{
			EventStream: "booking-events-test",
		},
		Store: StoreConfig{
			Driver: StoreDriverPostgres,
		},
		Engine: EngineConfig{
			OperationTimeout:       5 * time.Second,
			RefundTimeout:          time.Second,
			ConfirmRequiresPayment: true,
			ConfirmAllowsPartial:   true,
		},
		Outbox: OutboxConfig{
			PollInterval: 100 * time.Millisecond,
			BatchSize:    50,
		},
	}
}
