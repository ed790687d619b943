package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/socialee/socialee/internal/config"
	"github.com/socialee/socialee/internal/database"
	"github.com/socialee/socialee/internal/handlers"
	"github.com/socialee/socialee/internal/jobs"
	"github.com/socialee/socialee/internal/notifier"
	"github.com/socialee/socialee/internal/repository"
	cron "github.com/socialee/socialee/internal/scheduler"
	"github.com/socialee/socialee/internal/services"
	"github.com/socialee/socialee/pkg/logger"
	"github.com/socialee/socialee/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	snapRepo := repository.NewSnapRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	savedPostRepo := repository.NewSavedPostRepository(db)

	// --- Outbound notification queue ---
	notificationQueue := notifier.New(notificationRepo, 256)
	notificationQueue.Start()

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, userRepo, notificationQueue)
	userService := services.NewUserService(userRepo, notificationService, cfg.FrontendOrigin)
	postService := services.NewPostService(postRepo, savedPostRepo, userService, notificationService)
	snapService := services.NewSnapService(snapRepo, userService, notificationService)
	moodService := services.NewMoodService(moodRepo, userService, notificationService)
	messageService := services.NewMessageService(messageRepo, userRepo, notificationService)
	savedPostService := services.NewSavedPostService(savedPostRepo, postRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	snapHandler := handlers.NewSnapHandler(snapService)
	moodHandler := handlers.NewMoodHandler(moodService)
	messageHandler := handlers.NewMessageHandler(messageService)
	wsHandler := handlers.NewWSMessageHandler(messageService, cfg.JWTSecret)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	savedPostHandler := handlers.NewSavedPostHandler(savedPostService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes, rate limited against credential stuffing
	limiter := middleware.NewIPRateLimiter(60, time.Minute)
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(middleware.RateLimitMiddleware(limiter))
	authRoutes.HandleFunc("/signup", authHandler.SignupHandler).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.LoginHandler).Methods("POST")
	authRoutes.HandleFunc("/request-password-reset", authHandler.RequestPasswordResetHandler).Methods("POST")
	authRoutes.HandleFunc("/reset-password", authHandler.ResetPasswordHandler).Methods("POST")

	protectedAuthRoutes := api.PathPrefix("/auth").Subrouter()
	protectedAuthRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuthRoutes.HandleFunc("/change-password", authHandler.ChangePasswordHandler).Methods("PUT")

	// Post routes
	postRoutes := api.PathPrefix("/posts").Subrouter()
	postRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	postRoutes.HandleFunc("", postHandler.CreatePostHandler).Methods("POST")
	postRoutes.HandleFunc("/feed", postHandler.GetFeedHandler).Methods("GET")
	postRoutes.HandleFunc("/user/{id}", postHandler.GetUserPostsHandler).Methods("GET")
	postRoutes.HandleFunc("/{id}", postHandler.GetPostHandler).Methods("GET")
	postRoutes.HandleFunc("/{id}", postHandler.DeletePostHandler).Methods("DELETE")
	postRoutes.HandleFunc("/{id}/like", postHandler.LikePostHandler).Methods("POST")
	postRoutes.HandleFunc("/{id}/comments", postHandler.AddCommentHandler).Methods("POST")

	// Snap routes
	snapRoutes := api.PathPrefix("/snaps").Subrouter()
	snapRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	snapRoutes.HandleFunc("", snapHandler.CreateSnapHandler).Methods("POST")
	snapRoutes.HandleFunc("/feed", snapHandler.GetFeedHandler).Methods("GET")
	snapRoutes.HandleFunc("/{id}", snapHandler.DeleteSnapHandler).Methods("DELETE")
	snapRoutes.HandleFunc("/{id}/view", snapHandler.ViewSnapHandler).Methods("POST")
	snapRoutes.HandleFunc("/{id}/react", snapHandler.ReactSnapHandler).Methods("POST")

	// Mood routes
	moodRoutes := api.PathPrefix("/moods").Subrouter()
	moodRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	moodRoutes.HandleFunc("", moodHandler.CreateMoodHandler).Methods("POST")
	moodRoutes.HandleFunc("/feed", moodHandler.GetFeedHandler).Methods("GET")
	moodRoutes.HandleFunc("/{id}", moodHandler.DeleteMoodHandler).Methods("DELETE")
	moodRoutes.HandleFunc("/{id}/like", moodHandler.LikeMoodHandler).Methods("POST")
	moodRoutes.HandleFunc("/{id}/comments", moodHandler.AddCommentHandler).Methods("POST")

	// Message routes
	messageRoutes := api.PathPrefix("/messages").Subrouter()
	messageRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	messageRoutes.HandleFunc("/send", messageHandler.SendMessageHandler).Methods("POST")
	messageRoutes.HandleFunc("/conversations", messageHandler.GetConversationsHandler).Methods("GET")
	messageRoutes.HandleFunc("/conversation/{userId}", messageHandler.GetConversationHandler).Methods("GET")
	api.HandleFunc("/messages/ws", wsHandler.ServeWS).Methods("GET")

	// Notification routes
	notificationRoutes := api.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	notificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/mark-all-read", notificationHandler.MarkAllAsReadHandler).Methods("PUT")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("PUT")

	// User routes
	userRoutes := api.PathPrefix("/users").Subrouter()
	userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	userRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	userRoutes.HandleFunc("/search", userHandler.SearchUsersHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")
	userRoutes.HandleFunc("/{id}/follow", userHandler.FollowHandler).Methods("POST")
	userRoutes.HandleFunc("/{id}/unfollow", userHandler.UnfollowHandler).Methods("POST")
	userRoutes.HandleFunc("/{id}/followers", userHandler.GetFollowersHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}/following", userHandler.GetFollowingHandler).Methods("GET")

	// Saved post routes
	savedRoutes := api.PathPrefix("/saved").Subrouter()
	savedRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	savedRoutes.HandleFunc("", savedPostHandler.GetSavedPostsHandler).Methods("GET")
	savedRoutes.HandleFunc("/{postId}", savedPostHandler.SavePostHandler).Methods("POST")
	savedRoutes.HandleFunc("/{postId}", savedPostHandler.UnsavePostHandler).Methods("DELETE")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Periodic cleanup of expired snaps and stale notifications
	cleaner := jobs.NewCleaner(snapRepo, notificationRepo)
	cleanupCron := cron.StartCleanupCronJobs(cleaner)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		fmt.Printf("Server running on port %s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// On SIGINT/SIGTERM, stop accepting requests, then drain the notification
	// queue so enqueued batches are not lost.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("Server shutdown failed")
	}

	cleanupCron.Stop()
	notificationQueue.Stop()
}
