package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/cbummouad/ticket-backend/docs"
	"github.com/cbummouad/ticket-backend/internal/auth"
	"github.com/cbummouad/ticket-backend/internal/config"
	"github.com/cbummouad/ticket-backend/internal/handlers"
	"github.com/cbummouad/ticket-backend/internal/middleware"
	"github.com/cbummouad/ticket-backend/internal/realtime"
	"github.com/cbummouad/ticket-backend/internal/repository/postgres"
	"github.com/cbummouad/ticket-backend/internal/service"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

func New(log zerolog.Logger, db *pgxpool.Pool, hub *realtime.Hub, cfg config.Config) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))

	// Repos
	userRepo := postgres.NewUserRepo(db)
	roleRepo := postgres.NewRoleRepo(db)
	userRoleRepo := postgres.NewUserRoleRepo(db)
	ticketRepo := postgres.NewTicketRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)

	// Access decision gate
	verifier, err := auth.NewVerifier(cfg)
	if err != nil {
		return nil, err
	}
	resolver := auth.NewResolver(userRoleRepo)
	authed := middleware.WithAuth(log, verifier, cfg.AuthTimeout)
	admin := middleware.RequireAdmin(log, resolver, cfg.AuthTimeout, cfg.AdminDenyOnError)

	// Handlers
	ah := handlers.NewAuthHTTP(service.NewAuthService(userRepo, cfg.JWTSecret))
	uh := handlers.NewUserHTTP(userRepo, userRoleRepo)
	rh := handlers.NewRoleHTTP(roleRepo, userRoleRepo)
	th := handlers.NewTicketHTTP(ticketRepo, notificationRepo, hub)
	nh := handlers.NewNotificationHTTP(notificationRepo, hub, log)

	r.Get("/health", handlers.Health(cfg.Env))
	r.Mount("/swagger", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(authed).Get("/profile", ah.Profile())
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", th.List())
		r.Post("/", th.Create())
		r.Get("/{id}", th.Get())
		r.Put("/{id}", th.Update())
		r.Delete("/{id}", th.Delete())
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", uh.List())
		r.Get("/email/{email}", uh.GetByEmail())
		r.Get("/{id}", uh.Get())
		r.Get("/{id}/roles", uh.Roles())
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", uh.Create())
			r.Put("/{id}", uh.Update())
			r.Delete("/{id}", uh.Delete())
			r.Post("/{id}/roles", uh.AssignRole())
			r.Delete("/{id}/roles/{roleId}", uh.RemoveRole())
		})
	})

	r.Route("/roles", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", rh.List())
		r.Get("/slug/{slug}", rh.GetBySlug())
		r.Get("/user/{userId}", rh.UserRoles())
		r.Get("/{id}", rh.Get())
		r.Get("/{id}/users", rh.Users())
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", rh.Create())
			r.Put("/{id}", rh.Update())
			r.Delete("/{id}", rh.Delete())
			r.Post("/assign", rh.Assign())
			r.Post("/remove", rh.Remove())
		})
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", nh.List())
		r.Get("/unread", nh.Unread())
		r.Get("/ws", nh.Socket())
		r.Put("/mark-all-read", nh.MarkAllRead())
		r.Put("/{id}/read", nh.MarkRead())
		r.Delete("/{id}", nh.Delete())
		r.With(admin).Post("/", nh.Create())
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		utils.Error(w, http.StatusNotFound, "Route not found")
	})

	return r, nil
}
