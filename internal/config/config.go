package config

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string
	JWTSecret   []byte
	PublicURL   string
	KafkaTopic  string
	ReviewTTL   time.Duration
	KafkaBroker string
}

// Load reads .env (if present) and the environment. The JWT secret is the
// only value without a default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		logrus.Fatal("JWT_SECRET_KEY not set")
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		JWTSecret:   []byte(secret),
		PublicURL:   getenv("PUBLIC_URL", "http://localhost:8080"),
		KafkaTopic:  getenv("KAFKA_TOPIC", "order-events"),
		ReviewTTL:   7 * 24 * time.Hour,
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatal("Failed to connect to Redis: ", err)
	}

	return client
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
