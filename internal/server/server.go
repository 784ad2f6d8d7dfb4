package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/amine/orientation-platform/internal/config"
	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/server/middleware"
	"github.com/amine/orientation-platform/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer         *http.Server
	db                 *db.DB
	databaseURL        string
	rateLimiter        *ratelimit.Limiter
	jwtService         *JWTService
	userService        *UserService
	authHandler        *AuthHandler
	orientationService *OrientationService
	validator          *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:          database,
		databaseURL: cfg.DatabaseURL,
		validator:   validator.New(),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Initialize the survey workflow
	s.orientationService = NewOrientationService(database)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Authenticated routes sit behind the JWT
// middleware; admin routes additionally require the admin role.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(db.RoleAdmin)(h))
	}
	staffOnly := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(db.RoleAdmin, db.RoleAdvisor)(h))
	}

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Profile endpoints
	mux.Handle("GET /me", authed(http.HandlerFunc(s.handleMe)))
	mux.Handle("PUT /me/password", authed(http.HandlerFunc(s.handleUpdatePassword)))

	// Survey question endpoints
	mux.Handle("GET /questions", authed(http.HandlerFunc(s.handleListQuestions)))
	mux.Handle("GET /questions/{id}", authed(http.HandlerFunc(s.handleGetQuestion)))
	mux.Handle("POST /questions", adminOnly(s.handleCreateQuestion))
	mux.Handle("PUT /questions/{id}", adminOnly(s.handleUpdateQuestion))
	mux.Handle("DELETE /questions/{id}", adminOnly(s.handleDeleteQuestion))

	// Survey session endpoints
	mux.Handle("POST /sessions", authed(http.HandlerFunc(s.handleStartSession)))
	mux.Handle("GET /sessions", authed(http.HandlerFunc(s.handleListSessions)))
	mux.Handle("GET /sessions/{id}", authed(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("POST /sessions/{id}/answers", authed(http.HandlerFunc(s.handleSubmitAnswer)))
	mux.Handle("POST /sessions/{id}/complete", authed(http.HandlerFunc(s.handleCompleteSession)))
	mux.Handle("GET /sessions/{id}/result", authed(http.HandlerFunc(s.handleGetResult)))

	// Institution catalog endpoints
	mux.Handle("GET /institutions", authed(http.HandlerFunc(s.handleListInstitutions)))
	mux.Handle("GET /institutions/{id}", authed(http.HandlerFunc(s.handleGetInstitution)))
	mux.Handle("POST /institutions", adminOnly(s.handleCreateInstitution))
	mux.Handle("PUT /institutions/{id}", adminOnly(s.handleUpdateInstitution))
	mux.Handle("DELETE /institutions/{id}", adminOnly(s.handleDeleteInstitution))

	// Field catalog endpoints
	mux.Handle("GET /fields", authed(http.HandlerFunc(s.handleListFields)))
	mux.Handle("GET /fields/{id}", authed(http.HandlerFunc(s.handleGetField)))
	mux.Handle("POST /fields", adminOnly(s.handleCreateField))
	mux.Handle("PUT /fields/{id}", adminOnly(s.handleUpdateField))
	mux.Handle("DELETE /fields/{id}", adminOnly(s.handleDeleteField))

	// Favorites endpoints
	mux.Handle("POST /favorites", authed(http.HandlerFunc(s.handleAddFavorite)))
	mux.Handle("GET /favorites", authed(http.HandlerFunc(s.handleListFavorites)))
	mux.Handle("DELETE /favorites/{id}", authed(http.HandlerFunc(s.handleDeleteFavorite)))

	// Account administration endpoints
	mux.Handle("GET /users", staffOnly(s.handleListUsers))
	mux.Handle("PUT /users/{id}/role", adminOnly(s.handleUpdateUserRole))
	mux.Handle("DELETE /users/{id}", adminOnly(s.handleDeleteUser))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; X-Forwarded-For is ignored since
// it is spoofable unless received from a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
