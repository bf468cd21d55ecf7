package main

import (
	"os"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"propertychat/internal/api"
	"propertychat/internal/chat"
	"propertychat/internal/config"
	"propertychat/internal/leads"
	"propertychat/internal/logger"
	"propertychat/internal/notify"
	"propertychat/internal/ratelimit"
	"propertychat/internal/redis"
	"propertychat/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PROPERTYCHAT_CONFIG"))
	if err != nil {
		logger.L.Error("load config", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	dbType := os.Getenv("PROPERTYCHAT_DB")
	if dbType == "" {
		dbType = "sqlite3"
	}
	db, err := storage.Open(dbType, cfg)
	if err != nil {
		logger.L.Error("open database", "error", err, "db_type", dbType)
		os.Exit(1)
	}
	defer db.Close()
	if err := storage.Migrate(db, dbType); err != nil {
		logger.L.Error("migrate database", "error", err)
		os.Exit(1)
	}

	clk := clock.New()

	var limiter ratelimit.Limiter
	switch cfg.RateLimit.Backend {
	case "redis":
		cache, err := redis.NewClient(cfg.Redis)
		if err != nil {
			logger.L.Error("create redis client", "error", err)
			os.Exit(1)
		}
		defer cache.Close()
		limiter = ratelimit.NewRedisLimiter(cache, cfg.RateLimit.Window, cfg.RateLimit.Ceiling)
	default:
		limiter = ratelimit.NewMemoryLimiter(clk, cfg.RateLimit.Window, cfg.RateLimit.Ceiling)
	}

	hours, err := chat.NewHoursPolicy(cfg.Hours, clk)
	if err != nil {
		logger.L.Error("init business hours", "error", err)
		os.Exit(1)
	}
	contact := notify.FromConfig(cfg.Brokerage)
	store := chat.NewSessionStore(clk)
	responder := chat.NewResponder(clk, hours, contact)
	gateway := chat.NewGateway(limiter, store, responder, clk, cfg.Sessions)
	leadService := leads.NewService(db)

	handlers := api.NewHandler(gateway, hours, leadService, cfg.Admin.Token)
	router := gin.Default()
	handlers.RegisterRoutes(router)

	logger.L.Info("starting server", "address", cfg.Server.Address, "rate_limit_backend", cfg.RateLimit.Backend)
	if err := router.Run(cfg.Server.Address); err != nil {
		logger.L.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
