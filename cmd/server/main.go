package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dmoreira/asset-admin/internal/config"
	"github.com/dmoreira/asset-admin/internal/database"
	"github.com/dmoreira/asset-admin/internal/handler"
	"github.com/dmoreira/asset-admin/internal/middleware"
	"github.com/dmoreira/asset-admin/internal/queue"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/router"
	"github.com/dmoreira/asset-admin/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limit disabled")
	}

	publisher := queue.NewPublisher()
	go func() {
		if err := queue.StartAssetEventConsumer(); err != nil {
			log.Printf("asset event consumer stopped: %v", err)
		}
	}()

	companies := service.NewCompanyService(repository.NewCompanyRepo(db))
	units := service.NewUnitService(repository.NewUnitRepo(db))
	users := service.NewUserService(repository.NewUserRepo(db))
	assetRepo := repository.NewAssetRepo(db)
	assets := service.NewAssetService(assetRepo, publisher)
	reports := service.NewReportService(assetRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("6M"))

	router.Register(e, router.Handlers{
		Company: handler.NewCompanyHandler(companies),
		Unit:    handler.NewUnitHandler(units),
		User:    handler.NewUserHandler(users, &cfg),
		Asset:   handler.NewAssetHandler(assets),
		Report:  handler.NewReportHandler(reports),
	}, cfg.JWTSecret,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
