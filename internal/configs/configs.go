package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AppHost  string `mapstructure:"app_host" validate:"required"`
	AppPort  int    `mapstructure:"app_port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	DatabaseDriver string `mapstructure:"database_driver" validate:"required,oneof=sqlite postgres memory"`
	DatabaseDSN    string `mapstructure:"database_dsn" validate:"required_unless=DatabaseDriver memory"`

	QueueDriver   string `mapstructure:"queue_driver" validate:"required,oneof=redis nats memory"`
	QueueName     string `mapstructure:"queue_name" validate:"required"`
	RedisHost     string `mapstructure:"redis_host" validate:"required_if=QueueDriver redis"`
	RedisPort     int    `mapstructure:"redis_port" validate:"required_if=QueueDriver redis,gte=0,lt=65536"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	NATSURL       string `mapstructure:"nats_url" validate:"required_if=QueueDriver nats"`

	Workers             int           `mapstructure:"task_workers" validate:"gt=0"`
	QueueSize           int           `mapstructure:"task_queue_size" validate:"gt=0"`
	ProcessingDelay     time.Duration `mapstructure:"task_processing_delay" validate:"gte=0"`
	RedeliveryInterval  time.Duration `mapstructure:"task_redelivery_interval" validate:"gte=0"`
	RedeliveryAge       time.Duration `mapstructure:"task_redelivery_age" validate:"gte=0"`
	RedeliveryBatchSize int           `mapstructure:"task_redelivery_batch_size" validate:"gt=0"`

	RateLimit       int           `mapstructure:"rate_limit_per_minute" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

var defaults = map[string]any{
	"app_host":                   "127.0.0.1",
	"app_port":                   8080,
	"log_level":                  "info",
	"database_driver":            "sqlite",
	"database_dsn":               "tasks.db",
	"queue_driver":               "redis",
	"queue_name":                 "tasks_queue",
	"redis_host":                 "127.0.0.1",
	"redis_port":                 6379,
	"redis_password":             "",
	"redis_db":                   0,
	"nats_url":                   "nats://127.0.0.1:4222",
	"task_workers":               5,
	"task_queue_size":            100,
	"task_processing_delay":      "3s",
	"task_redelivery_interval":   "0s",
	"task_redelivery_age":        "1m",
	"task_redelivery_batch_size": 50,
	"rate_limit_per_minute":      60,
	"shutdown_timeout":           "20s",
}

// Load reads configuration from the environment. Every key maps to the
// upper-cased environment variable of the same name, e.g. task_workers is
// read from TASK_WORKERS.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) AppURL() string {
	return fmt.Sprintf("%s:%d", c.AppHost, c.AppPort)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
