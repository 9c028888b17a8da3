package main

import (
	"github.com/sirupsen/logrus"

	httpapi "mealbox/internal/api/http"
	"mealbox/internal/config"
	"mealbox/internal/database"
	"mealbox/internal/service"
	"mealbox/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	db, err := database.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := config.MustInitRedis()
	defer redisClient.Close()

	var publisher service.EventPublisher
	if cfg.KafkaBroker != "" {
		kafkaWriter := config.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic)
		defer kafkaWriter.Close()
		publisher = storage.NewKafkaPublisher(kafkaWriter)
	} else {
		log.Warn("KAFKA_BROKER not set, order events disabled")
	}

	repo := storage.NewPostgresRepository(db)
	reviewCache := storage.NewRedisCache(redisClient, cfg.ReviewTTL)
	qrEncoder := &service.DefaultQRGenerator{BaseURL: cfg.PublicURL}

	authSvc := service.NewAuthService(repo, cfg.JWTSecret)
	orderSvc := service.NewOrderService(repo, repo, publisher, qrEncoder, log)
	statusSvc := service.NewStatusService(repo, publisher, log)
	reviewSvc := service.NewReviewService(repo, reviewCache, publisher, log)
	shopSvc := service.NewShopService(repo, repo, log)

	handler := httpapi.NewHandler(authSvc, orderSvc, statusSvc, reviewSvc, shopSvc, log)
	router := httpapi.NewRouter(handler, authSvc)

	httpapi.StartServer(":"+cfg.Port, router, log)
}
