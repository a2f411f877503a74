package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"govlens/backend/internal/api/handler"
	"govlens/backend/internal/classify"
	"govlens/backend/internal/complaint"
	"govlens/backend/internal/feed"
	"govlens/backend/internal/models"
	"govlens/backend/internal/notify"
	"govlens/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL (optional: audit trail and officer registry)
	var db *gorm.DB
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Println("Warning: POSTGRES_DSN not set, running without audit trail and officer registry")
	} else {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect PostgreSQL: %v", err)
		}

		if err := db.AutoMigrate(
			&models.Officer{},
			&models.TransitionAudit{},
		); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// 2. Redis (required: holds the complaint document and the update channel)
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Storage connections established, migrations complete.")
	return db, rdb
}

func setupClassifier() classify.Classifier {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set, classifications will use the fallback record")
		return classify.Unconfigured{}
	}

	gemini, err := classify.NewGeminiService(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to create Gemini classifier: %v", err)
	}
	return gemini
}

func main() {
	log.Println("Starting GovLens Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Core services
	store := complaint.NewStore(s, complaint.DefaultSeed)
	if _, err := store.LoadAll(); err != nil {
		log.Fatalf("Failed to load complaint collection: %v", err)
	}

	intake := complaint.NewService(store, setupClassifier(), s)
	engine := complaint.NewEngine(store, s)

	// 3. Background goroutines
	hub := feed.NewHub(s)
	go hub.Run(context.Background())

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("TELEGRAM_CHAT_ID must be a numeric chat id: %v", err)
		}
		notifier, err := notify.NewTelegramNotifier(token, chatID, s)
		if err != nil {
			log.Fatalf("Failed to start Telegram notifier: %v", err)
		}
		go notifier.Run()
	}

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(store, intake, engine, hub, s)

	r.POST("/auth/anon", h.GetAnonID)
	r.POST("/auth/officer", h.OfficerLogin)

	r.POST("/complaints/analyze", h.AnalyzeSubmission)
	r.POST("/complaints", h.ConfirmSubmission)
	r.GET("/complaints", h.ListComplaints)
	r.GET("/complaints/:id", h.GetComplaint)
	r.GET("/complaints/:id/pending", h.GetPendingStages)
	r.POST("/complaints/:id/transition", h.OfficerRequired(), h.TransitionComplaint)
	r.GET("/officer/summary", h.OfficerRequired(), h.OfficerSummary)

	r.GET("/ws", h.ServeWebSocket)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
