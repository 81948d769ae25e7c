package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peopleops-io/hrms-backend-go/internal/config"
	appHTTP "github.com/peopleops-io/hrms-backend-go/internal/handler/http"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/email"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/ratelimit"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/sse"
	"github.com/peopleops-io/hrms-backend-go/internal/repository/postgresql"
	announcementService "github.com/peopleops-io/hrms-backend-go/internal/service/announcement"
	authService "github.com/peopleops-io/hrms-backend-go/internal/service/auth"
	jobService "github.com/peopleops-io/hrms-backend-go/internal/service/job"
	leaveService "github.com/peopleops-io/hrms-backend-go/internal/service/leave"
	notificationService "github.com/peopleops-io/hrms-backend-go/internal/service/notification"
	positionService "github.com/peopleops-io/hrms-backend-go/internal/service/position"
	timelogService "github.com/peopleops-io/hrms-backend-go/internal/service/timelog"
	userService "github.com/peopleops-io/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	timelogRepo := postgresql.NewTimelogRepository(db)
	editRequestRepo := postgresql.NewEditRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	jobPositionRepo := postgresql.NewJobPositionRepository(db)
	jobApplicationRepo := postgresql.NewJobApplicationRepository(db)
	resetTokenRepo := postgresql.NewPasswordResetTokenRepository(db)
	txManager := postgresql.NewTxManager(db)

	// Shared infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		fmt.Println("Error initializing email service:", err)
		os.Exit(1)
	}
	resetLimiter := ratelimit.NewRedisLimiter(redisClient, "pwreset", 3, time.Hour)
	hub := sse.NewHub()

	// Services
	notifier := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	authSvc := authService.NewAuthService(userRepo, resetTokenRepo, jwtService, emailService, resetLimiter, cfg.App.FrontendURL)
	userSvc := userService.NewUserService(userRepo, positionRepo)
	positionSvc := positionService.NewPositionService(positionRepo)
	timelogSvc := timelogService.NewTimelogService(timelogRepo, txManager, notifier)
	editRequestSvc := timelogService.NewEditRequestService(editRequestRepo, timelogRepo, userRepo, notifier)
	leaveSvc := leaveService.NewLeaveService(leaveBalanceRepo, leaveRequestRepo, userRepo, txManager, notifier)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo, userRepo, notifier)
	jobSvc := jobService.NewJobService(jobPositionRepo, jobApplicationRepo, userRepo, notifier)

	// Handlers
	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Position:     appHTTP.NewPositionHandler(positionSvc),
		Timelog:      appHTTP.NewTimelogHandler(timelogSvc),
		EditRequest:  appHTTP.NewTimelogEditRequestHandler(editRequestSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Notification: appHTTP.NewNotificationHandler(notifier, jwtService),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
		Job:          appHTTP.NewJobHandler(jobSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, userRepo, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	// Flush queued notifications before exit
	notifier.Stop()
}
