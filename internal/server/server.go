package server

import (
	"fmt"
	"net/http"
	"time"

	"petshop/internal/config"
	"petshop/internal/database"
	custommiddleware "petshop/internal/middleware"
	"petshop/internal/repository"
	"petshop/internal/service"
	"petshop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// landingPage is the static content served at the root path
const landingPage = `<!DOCTYPE html>
<html>
<head>
    <title>Pet Demo REST API Service</title>
</head>
<body>
    <h1>Pet Demo REST API Service</h1>
    <p>This service implements a REST API for Pets.</p>
    <ul>
        <li><code>GET /pets</code> - list all of the pets</li>
        <li><code>GET /pets/{id}</code> - retrieve a single pet</li>
        <li><code>POST /pets</code> - create a new pet</li>
        <li><code>PUT /pets/{id}</code> - update a pet</li>
        <li><code>DELETE /pets/{id}</code> - delete a pet</li>
    </ul>
</body>
</html>
`

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	dbService database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Unmatched paths and unsupported verbs use the same error envelope as
	// the handlers
	router.NotFound(custommiddleware.NotFoundHandler())
	router.MethodNotAllowed(custommiddleware.MethodNotAllowedHandler())

	// Landing page
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(landingPage))
	})

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, dbService.Health())
	})

	// Initialize repositories
	petRepo := repository.NewPetRepository(dbService.DB())

	// Initialize services
	petService := service.NewPetService(petRepo)

	// Initialize handlers
	petHandler := transport.NewPetHandler(petService, logger)

	// Register routes
	petHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		dbService: dbService,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
