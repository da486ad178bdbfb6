package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/config"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/database"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/handler"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/queue"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/repository"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/router"
	queue_publisher "github.com/RihamAlgosbi/zawiya-complaints-backend/internal/service"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db, cfg.BcryptCost)
	categories := repository.NewCategoryRepo(db)
	complaints := repository.NewComplaintRepo(db)

	complaintHandler := handler.NewComplaintHandler(complaints, store)
	complaintHandler.Publish = queue_publisher.PublishComplaintCreated
	complaintHandler.EnforceOwnership = cfg.EnforceOwnership

	// Background consumer mirroring filed complaints to logs/complaints.log.
	go func() {
		if err := queue.StartComplaintConsumer(); err != nil {
			log.Printf("complaint consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg,
		handler.NewUserHandler(cfg, users),
		handler.NewCategoryHandler(categories),
		complaintHandler,
		handler.NewExportHandler(complaints),
		handler.NewUploadHandler(store),
		rdb,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
