package main

import (
	"context"
	"log"
	"time"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/auth"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/config"
	httpctrl "github.com/Kalaitechtubee/ratan-decor-api/internal/controllers/http"
	mmysql "github.com/Kalaitechtubee/ratan-decor-api/internal/infra/mysql"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/infra/rabbitmq"
	mysqlrepo "github.com/Kalaitechtubee/ratan-decor-api/internal/repository/mysql"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// noopPublisher stands in when no broker is configured, e.g. local runs.
type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, routingKey string, data any) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewStore(db)

	var publisher rabbitmq.PublisherInterface = noopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, "order.exchange")
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Warn("RABBITMQ_URL not set, order events disabled")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	addresses := services.NewAddressResolver(store, logger)
	orders := services.NewOrderService(store, addresses, publisher, logger)
	catalog := services.NewCatalogService(store, logger)
	carts := services.NewCartService(store, logger)
	authSvc := services.NewAuthService(store, jwtService, logger)

	if cfg.RedisHost != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisHost + ":6379",
			DB:           0,
			PoolSize:     100,
			MinIdleConns: 10,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		orders.SetRedisClient(redisClient)
		catalog.SetRedisClient(redisClient)

		go func() {
			time.Sleep(5 * time.Second)
			ctx := context.Background()
			products, err := store.Products().FindAllActive(ctx)
			if err != nil {
				logger.WithError(err).Warn("cache warmup: listing products failed")
				return
			}
			ids := make([]uint, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			if err := catalog.WarmupProductCache(ctx, ids); err != nil {
				logger.WithError(err).Warn("cache warmup failed")
			}
		}()
	}

	handler := httpctrl.NewHandler(orders, catalog, carts, addresses, authSvc, jwtService, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	logger.Infof("starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
