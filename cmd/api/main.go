package main

import (
	"potrack/config"
	"potrack/internal/api"
	"potrack/internal/repository"
	"potrack/internal/service"
	"potrack/pkg/db"
	"potrack/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	msgRepo := repository.NewMessageRepository(dbConn)

	// Init Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)

	// Init Handlers
	authHandler := api.NewAuthHandler(authService)
	recordsHandler := api.NewRecordsHandler(msgRepo)
	viewsHandler := api.NewViewsHandler(msgRepo)

	// Router
	router := api.NewRouter(authHandler, recordsHandler, viewsHandler, cfg.JWT.Secret)

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
