package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// LoadConfig reads configs/<name>.env (or ./<name>.env), then the environment
func LoadConfig(configName string) (*Config, error) {
	return loadConfig(fmt.Sprintf("%s.env", configName), "env")
}

// LoadConfigWithName loads configuration letting viper detect the file type
func LoadConfigWithName(configName string) (*Config, error) {
	return loadConfig(configName, "")
}

// LoadConfigWithNameAndType loads configuration forcing the file format
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// loadConfig layers defaults, the config file and environment variables, in
// that order of precedence from lowest to highest, and validates the result
func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Printf("WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config, err := fromViper(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// fromViper builds the config struct. Decimal settings are parsed here so a
// malformed rate fails loudly instead of silently becoming zero.
func fromViper(v *viper.Viper) (*Config, error) {
	rate, err := decimal.NewFromString(v.GetString("BANK_FD_DEFAULT_INTEREST_RATE"))
	if err != nil {
		return nil, fmt.Errorf("BANK_FD_DEFAULT_INTEREST_RATE: %w", err)
	}
	overdraft, err := decimal.NewFromString(v.GetString("BANK_SAVINGS_DEFAULT_OVERDRAFT_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("BANK_SAVINGS_DEFAULT_OVERDRAFT_LIMIT: %w", err)
	}

	return &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Kafka: KafkaConfig{
			Enabled:           v.GetBool("KAFKA_ENABLED"),
			Brokers:           v.GetString("KAFKA_BROKERS"),
			OperationTopic:    v.GetString("KAFKA_OPERATION_TOPIC"),
			LedgerEventTopic:  v.GetString("KAFKA_LEDGER_EVENT_TOPIC"),
			DLQTopic:          v.GetString("KAFKA_DLQ_TOPIC"),
			NumPartitions:     v.GetInt("KAFKA_NUM_PARTITIONS"),
			ReplicationFactor: v.GetInt("KAFKA_REPLICATION_FACTOR"),
			ConsumerGroup:     v.GetString("KAFKA_CONSUMER_GROUP"),
			MinBytes:          v.GetInt("KAFKA_CONSUMER_MIN_BYTES"),
			MaxBytes:          v.GetInt("KAFKA_CONSUMER_MAX_BYTES"),
			MaxWait:           v.GetDuration("KAFKA_CONSUMER_MAX_WAIT"),
		},
		WorkerPool: WorkerPoolConfig{
			Size: v.GetInt("WORKER_POOL_SIZE"),
		},
		Bank: BankConfig{
			DefaultLockInMonths:   v.GetInt("BANK_FD_DEFAULT_LOCK_IN"),
			DefaultInterestRate:   rate,
			DefaultOverdraftLimit: overdraft,
		},
		Maturity: MaturityConfig{
			Enabled:       v.GetBool("MATURITY_CLOCK_ENABLED"),
			TickInterval:  v.GetDuration("MATURITY_TICK_INTERVAL"),
			MonthsPerTick: v.GetInt("MATURITY_MONTHS_PER_TICK"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "account-ledger")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Development broker; production overrides through the environment
	v.SetDefault("KAFKA_ENABLED", true)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_OPERATION_TOPIC", "account_operations")
	v.SetDefault("KAFKA_LEDGER_EVENT_TOPIC", "ledger_events")
	v.SetDefault("KAFKA_DLQ_TOPIC", "account_operations_dlq")
	v.SetDefault("KAFKA_NUM_PARTITIONS", 1)
	v.SetDefault("KAFKA_REPLICATION_FACTOR", 1)
	v.SetDefault("KAFKA_CONSUMER_GROUP", "operation-processor-group")
	v.SetDefault("KAFKA_CONSUMER_MIN_BYTES", 10240)
	v.SetDefault("KAFKA_CONSUMER_MAX_BYTES", 10485760)
	v.SetDefault("KAFKA_CONSUMER_MAX_WAIT", time.Second)

	v.SetDefault("WORKER_POOL_SIZE", 10)

	v.SetDefault("BANK_FD_DEFAULT_LOCK_IN", 12)
	v.SetDefault("BANK_FD_DEFAULT_INTEREST_RATE", "0.5")
	v.SetDefault("BANK_SAVINGS_DEFAULT_OVERDRAFT_LIMIT", "2000")

	v.SetDefault("MATURITY_CLOCK_ENABLED", false)
	v.SetDefault("MATURITY_TICK_INTERVAL", time.Minute)
	v.SetDefault("MATURITY_MONTHS_PER_TICK", 1)
}
