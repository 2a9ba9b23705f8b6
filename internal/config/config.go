// Package config loads and validates the settings of the banking service:
// HTTP gateway, Kafka topics, worker pool, account defaults and the maturity clock.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config is the full service configuration, validated once at startup
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Kafka       KafkaConfig
	WorkerPool  WorkerPoolConfig
	Bank        BankConfig
	Maturity    MaturityConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or text
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// KafkaConfig describes the operation, ledger event and dead letter topics.
// When Enabled is false the service runs with the HTTP gateway only.
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	OperationTopic    string
	LedgerEventTopic  string
	DLQTopic          string
	NumPartitions     int
	ReplicationFactor int
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int
}

// BankConfig holds the defaults used when an account is opened without
// variant parameters
type BankConfig struct {
	DefaultLockInMonths   int
	DefaultInterestRate   decimal.Decimal
	DefaultOverdraftLimit decimal.Decimal
}

// MaturityConfig drives the clock that counts down fixed deposit lock-ins
type MaturityConfig struct {
	Enabled       bool
	TickInterval  time.Duration
	MonthsPerTick int
}

func (c *Config) validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Kafka settings only matter when the messaging side is switched on
	if c.Kafka.Enabled {
		if c.Kafka.Brokers == "" {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
		}
		if c.Kafka.OperationTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_OPERATION_TOPIC is required")
		}
		if c.Kafka.LedgerEventTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_LEDGER_EVENT_TOPIC is required")
		}
		if c.Kafka.DLQTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_DLQ_TOPIC is required")
		}
		if c.Kafka.ConsumerGroup == "" {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
		}
		if c.Kafka.MinBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
		}
		if c.Kafka.MaxBytes < c.Kafka.MinBytes {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must not be less than KAFKA_CONSUMER_MIN_BYTES")
		}
		if c.Kafka.MaxWait <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
		}
	}

	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if c.Bank.DefaultLockInMonths < 0 {
		validationErrors = append(validationErrors, "BANK_FD_DEFAULT_LOCK_IN must not be negative")
	}
	if c.Bank.DefaultInterestRate.IsNegative() {
		validationErrors = append(validationErrors, "BANK_FD_DEFAULT_INTEREST_RATE must not be negative")
	}
	if c.Bank.DefaultOverdraftLimit.IsNegative() {
		validationErrors = append(validationErrors, "BANK_SAVINGS_DEFAULT_OVERDRAFT_LIMIT must not be negative")
	}

	if c.Maturity.Enabled {
		if c.Maturity.TickInterval <= 0 {
			validationErrors = append(validationErrors, "MATURITY_TICK_INTERVAL must be greater than 0")
		}
		if c.Maturity.MonthsPerTick <= 0 {
			validationErrors = append(validationErrors, "MATURITY_MONTHS_PER_TICK must be greater than 0")
		}
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
