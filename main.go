package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomly/config"
	"roomly/cron"
	"roomly/database"
	bookingRepoPkg "roomly/database/repository/booking"
	roomRepoPkg "roomly/database/repository/room"
	userRepoPkg "roomly/database/repository/user"
	"roomly/handlers"
	"roomly/middleware"
	"roomly/routes"
	"roomly/services/ai"
	"roomly/services/booking"
	"roomly/services/suggestion"
	"roomly/services/user"
	"roomly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Rooms:    roomRepo,
		Bookings: bookingRepo,
	}

	aiClient, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize AI client: %v", err)
	}

	suggestionService := &suggestion.DefaultSuggestionService{
		AI:        aiClient,
		Rooms:     roomRepo,
		Bookings:  bookingService,
		AITimeout: time.Duration(config.AppConfig.AITimeoutSeconds) * time.Second,
	}

	// handlers.
	bundle := &routes.Bundle{
		Auth:        handlers.NewAuthHandler(userService),
		Users:       handlers.NewUserHandler(userService),
		Rooms:       handlers.NewRoomHandler(roomRepo),
		Bookings:    handlers.NewBookingHandler(bookingService),
		Suggestions: handlers.NewSuggestionHandler(suggestionService),
		UserRepo:    userRepo,
	}
	routes.RegisterRoutes(router, bundle)

	// Background sweep that marks ended bookings completed.
	cron.InitBookingSweeper(bookingRepo)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
