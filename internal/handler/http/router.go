package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"

	"github.com/peopleops-io/hrms-backend-go/internal/config"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/jwt"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Position     PositionHandler
	Timelog      TimelogHandler
	EditRequest  TimelogEditRequestHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	Announcement AnnouncementHandler
	Job          JobHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, userRepo user.Repository, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Unauthenticated endpoints take a per-IP limit
	publicLimiter := middleware.NewIPRateLimiter(rate.Limit(5), 10)

	r.Route("/api/v1", func(r chi.Router) {

		// Public
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Handler)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", h.Auth.Login)
				r.Post("/forgot-password", h.Auth.ForgotPassword)
				r.Post("/reset-password", h.Auth.ResetPassword)
			})

			r.Route("/careers", func(r chi.Router) {
				r.Get("/positions", h.Job.ListOpenPositions)
				r.Post("/apply", h.Job.Apply)
			})
		})

		// SSE stream authenticates with its own short-lived token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.LoadUser(userRepo))

			r.Post("/auth/change-password", h.Auth.ChangePassword)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.GetProfile)
				r.Put("/me", h.User.UpdateProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROrAdmin)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Get("/{id}", h.User.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{id}", h.User.UpdateUser)
					r.Put("/{id}/enable", h.User.Enable)
					r.Put("/{id}/disable", h.User.Disable)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.Position.List)
				r.Get("/{id}", h.Position.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Position.Create)
					r.Put("/{id}", h.Position.Update)
					r.Delete("/{id}", h.Position.Delete)
				})
			})

			r.Route("/timelogs", func(r chi.Router) {
				r.Post("/clock-in", h.Timelog.ClockIn)
				r.Post("/clock-out", h.Timelog.ClockOut)
				r.Post("/break/start", h.Timelog.StartBreak)
				r.Post("/break/end", h.Timelog.EndBreak)
				r.Get("/status", h.Timelog.Status)
				r.Get("/my", h.Timelog.ListMine)
				r.Get("/{id}", h.Timelog.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROrAdmin)
					r.Get("/", h.Timelog.Search)
					r.Get("/export", h.Timelog.ExportCSV)
					r.Put("/{id}/adjust", h.Timelog.Adjust)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", h.Timelog.Delete)
				})
			})

			r.Route("/timelog-edit-requests", func(r chi.Router) {
				r.Post("/", h.EditRequest.Create)
				r.Get("/my", h.EditRequest.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROrAdmin)
					r.Get("/assigned", h.EditRequest.ListAssigned)
					r.Put("/{id}/approve", h.EditRequest.Approve)
					r.Put("/{id}/reject", h.EditRequest.Reject)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/balances", h.Leave.GetMyBalances)
				r.Post("/requests", h.Leave.Submit)
				r.Get("/requests/my", h.Leave.ListMine)
				r.Get("/requests/{id}", h.Leave.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROrAdmin)
					r.Get("/balances/{employeeID}", h.Leave.GetEmployeeBalances)
					r.Get("/requests", h.Leave.ListAll)
					r.Get("/requests/pending", h.Leave.ListPending)
					r.Put("/requests/{id}/approve", h.Leave.Approve)
					r.Put("/requests/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/read", h.Notification.MarkAsRead)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Announcement.ListActive)
				r.Get("/{id}", h.Announcement.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROrAdmin)
					r.Get("/all", h.Announcement.ListAll)
					r.Post("/", h.Announcement.Create)
					r.Put("/{id}", h.Announcement.Update)
					r.Put("/{id}/deactivate", h.Announcement.Deactivate)
					r.Delete("/{id}", h.Announcement.Delete)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Use(middleware.HROrAdmin)

				r.Route("/positions", func(r chi.Router) {
					r.Get("/", h.Job.ListAllPositions)
					r.Post("/", h.Job.CreatePosition)
					r.Put("/{id}", h.Job.UpdatePosition)
					r.Put("/{id}/deactivate", h.Job.DeactivatePosition)
				})

				r.Route("/applications", func(r chi.Router) {
					r.Get("/", h.Job.ListApplications)
					r.Get("/{id}", h.Job.GetApplication)
					r.Get("/{id}/resume", h.Job.DownloadResume)
					r.Put("/{id}/review", h.Job.ReviewApplication)
				})
			})
		})
	})

	return r
}
