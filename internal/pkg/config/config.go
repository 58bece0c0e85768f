package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Uploads UploadsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=service_orders"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS, default=localhost:9092"`
	Topic   string   `env:"KAFKA_TOPIC,   default=service_order_events"`
}

type UploadsConfig struct {
	Dir string `env:"UPLOADS_DIR, default=uploads"`
	// MaxSizeMB caps a single photo upload.
	MaxSizeMB int64 `env:"UPLOAD_MAX_SIZE_MB, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
