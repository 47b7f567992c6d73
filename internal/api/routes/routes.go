package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	_ "github.com/hsm-gustavo/jobboard/docs"
	"github.com/hsm-gustavo/jobboard/internal/api/auth"
	"github.com/hsm-gustavo/jobboard/internal/api/health"
	"github.com/hsm-gustavo/jobboard/internal/api/job"
	"github.com/hsm-gustavo/jobboard/internal/api/tokenized"
	"github.com/hsm-gustavo/jobboard/internal/api/user"
	"github.com/hsm-gustavo/jobboard/internal/logger"
	"github.com/hsm-gustavo/jobboard/internal/store"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Deps holds what the router needs. UserCache and DB are optional.
type Deps struct {
	Store       store.Store
	Tokens      *auth.TokenService
	UserCache   user.Cache
	DB          health.Pinger
	CORSOrigins []string
}

func SetupRoutes(deps Deps) http.Handler {
	r := chi.NewRouter()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // max time in seconds for OPTIONS preflight response cache
	})

	r.Use(corsMiddleware.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	// init services & handlers
	userService := user.NewUserService(deps.Store, deps.UserCache)
	authHandler := auth.NewAuthHandler(auth.NewAuthService(userService, deps.Tokens))
	jobHandler := job.NewHandler(job.NewJobService(deps.Store))
	tokenizedHandler := tokenized.NewHandler(tokenized.NewService(deps.Store))
	healthHandler := health.NewHandler(deps.DB)

	r.Get("/health", healthHandler.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		// public routes
		r.Post("/auth/wallet", authHandler.WalletAuth)
		r.Get("/jobs", jobHandler.ListJobs)
		r.Get("/jobs/{id}", jobHandler.GetJob)
		r.Get("/tokenized-jobs", tokenizedHandler.List)

		// protected routes
		r.Group(func(r chi.Router) {
			r.Use(authHandler.AuthMiddleware)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/jobs", jobHandler.CreateJob)
			r.Delete("/jobs/{id}", jobHandler.DeleteJob)
			r.Post("/tokenized-jobs", tokenizedHandler.Create)
		})
	})

	// init swagger
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
