package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"claimbot/internal/calc"
	"claimbot/internal/client"
	"claimbot/internal/config"
	"claimbot/internal/database/mongo"
	"claimbot/internal/events"
	"claimbot/internal/handlers"
	"claimbot/internal/middleware"
	"claimbot/internal/rbac"
	"claimbot/internal/service"
	"claimbot/pkg/discovery"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/claimbot", "log")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.ServiceConfig

	app := fiber.New(fiber.Config{})

	// Initialize event publisher
	eventPublisher, err := events.NewEventPublisher(cfg.RabbitMQURI())
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		eventPublisher, _ = events.NewEventPublisher("")
	}

	// Initialize services
	distanceClient := client.NewDistanceClient(cfg)
	mileageCalculator := calc.NewMileageCalculator(distanceClient, cfg.OfficeLocation())

	jwtService := service.NewJWTService()
	userService := service.NewUserService()
	rateService := service.NewRateService()
	claimService := service.NewClaimService(eventPublisher, mileageCalculator, rateService)
	overtimeService := service.NewOvertimeService(eventPublisher, rateService)

	// Initialize payroll consumer
	payrollConsumer := events.NewPayrollConsumer(eventPublisher.Client(), claimService, overtimeService)
	if err := payrollConsumer.Start(); err != nil {
		log.Printf("Warning: Failed to start payroll consumer: %v", err)
	}

	// Initialize and register handlers
	auth := middleware.AuthRequired(jwtService, rbac.DefaultPolicy())

	userHandler := handlers.NewUserHandler(userService, jwtService)
	userHandler.RegisterRoutes(app, auth)
	claimHandler := handlers.NewClaimHandler(claimService)
	claimHandler.RegisterRoutes(app, auth)
	overtimeHandler := handlers.NewOvertimeHandler(overtimeService)
	overtimeHandler.RegisterRoutes(app, auth)
	rateHandler := handlers.NewRateHandler(rateService)
	rateHandler.RegisterRoutes(app, auth)

	// Register with service discovery
	if discovery.ServiceDiscovery != nil {
		if err := discovery.ServiceDiscovery.Register(); err != nil {
			log.Printf("Warning: Failed to register with Consul: %v", err)
		}
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if err := payrollConsumer.Close(); err != nil {
		log.Printf("Error closing payroll consumer: %v", err)
	}

	if err := eventPublisher.Close(); err != nil {
		log.Printf("Error closing event publisher: %v", err)
	}

	mongo.DisconnectMongo()

	if discovery.ServiceDiscovery != nil {
		if err := discovery.ServiceDiscovery.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	<-doneChan
	log.Println("Server shutdown complete")
}
