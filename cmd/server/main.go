package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gamehound/gamehound/internal/config"
	"github.com/gamehound/gamehound/internal/database"
	"github.com/gamehound/gamehound/internal/handler"
	"github.com/gamehound/gamehound/internal/queue"
	"github.com/gamehound/gamehound/internal/repository"
	"github.com/gamehound/gamehound/internal/router"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	projects := repository.NewProjectRepo(db)
	tasks := repository.NewTaskRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	projectH := handler.NewProjectHandler(projects)
	taskH := handler.NewTaskHandler(tasks)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, authH, projectH, taskH, cfg.JWTSecret, rdb)

	// Activity feed consumer; reconnects on its own and never stops the API.
	go func() {
		if err := queue.StartProjectConsumer(); err != nil {
			log.Printf("project consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
