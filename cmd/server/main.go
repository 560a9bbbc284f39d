package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"patient-kiosk-backend/internal/config"
	"patient-kiosk-backend/internal/database"
	"patient-kiosk-backend/internal/handler"
	"patient-kiosk-backend/internal/logging"
	"patient-kiosk-backend/internal/mqtt"
	"patient-kiosk-backend/internal/repository"
	"patient-kiosk-backend/internal/service"
	"patient-kiosk-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	logging.Setup(cfg.Log)
	log.Println("Configuration loaded successfully")

	// 2. Initialize session token signing with config
	utils.InitSessionTokens(cfg.Session.TokenSecret, cfg.Session.TokenExpiry)

	// 3. Initialize database connection (runs migrations)
	db := database.Connect(cfg)

	// 4. Initialize repositories
	patientRepo := repository.NewPatientRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	readingRepo := repository.NewReadingRepo(db)

	// 5. Initialize services
	patientService := service.NewPatientService(patientRepo)
	sessionService := service.NewSessionService(patientRepo, sessionRepo)
	readingService := service.NewReadingService(patientRepo, sessionRepo, readingRepo)

	// 6. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)

	patientHandler := handler.NewPatientHandler(patientService, readingService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	readingHandler := handler.NewReadingHandler(readingService)

	r := handler.NewRouter(cfg, patientHandler, sessionHandler, readingHandler)

	// 7. Optionally start the MQTT ingest path
	if cfg.MQTT.Broker != "" {
		mqttClient, err := mqtt.Start(cfg, readingService)
		if err != nil {
			log.Fatalf("Failed to initialize MQTT client: %v", err)
		}
		defer mqttClient.Disconnect(250)
	}

	// 8. Start the server with graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
