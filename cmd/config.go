package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config carries all runtime settings of the tracking service.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaHost            string
	KafkaConsumerGroup   string
	KafkaOrderEventTopic string

	RetentionHorizonDays   int
	RetentionSweepSchedule string
}

// LoadConfig reads the service configuration from the environment.
// A missing .env file is not an error; explicit environment variables
// always win over file values.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	return Config{
		HTTPPort: cast.ToString(getOrReturnDefault("HTTP_PORT", "8080")),

		DBHost:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
		DBPort:     cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
		DBUser:     cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
		DBPassword: cast.ToString(getOrReturnDefault("DB_PASSWORD", "postgres")),
		DBName:     cast.ToString(getOrReturnDefault("DB_NAME", "tracking")),
		DBSslMode:  cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),

		RedisAddr:     cast.ToString(getOrReturnDefault("REDIS_ADDR", "")),
		RedisPassword: cast.ToString(getOrReturnDefault("REDIS_PASSWORD", "")),
		RedisDB:       cast.ToInt(getOrReturnDefault("REDIS_DB", 0)),

		KafkaHost:            cast.ToString(getOrReturnDefault("KAFKA_HOST", "")),
		KafkaConsumerGroup:   cast.ToString(getOrReturnDefault("KAFKA_CONSUMER_GROUP", "tracking")),
		KafkaOrderEventTopic: cast.ToString(getOrReturnDefault("KAFKA_ORDER_EVENT_TOPIC", "order-events")),

		RetentionHorizonDays:   cast.ToInt(getOrReturnDefault("RETENTION_HORIZON_DAYS", 30)),
		RetentionSweepSchedule: cast.ToString(getOrReturnDefault("RETENTION_SWEEP_SCHEDULE", "0 0 3 * * *")),
	}
}

func getOrReturnDefault(key string, defaultValue any) any {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
