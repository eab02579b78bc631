package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/briefly/internal/catalog"
	"github.com/jonathan/briefly/internal/config"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/gateway"
	"github.com/jonathan/briefly/internal/server/middleware"
	"github.com/jonathan/briefly/internal/server/ratelimit"
	"github.com/jonathan/briefly/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	gateway     *gateway.Gateway
	ledger      credits.Ledger
	briefs      store.BriefStore
	catalog     *catalog.Catalog
	identity    middleware.Authenticator
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	corsOrigins []string
	authHandler *AuthHandler
	startedAt   time.Time
}

// Config holds server configuration
type Config struct {
	Port               int
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	Credits            CreditPolicy
}

// Deps are the collaborators the server routes requests to. Identity
// defaults to JWT, Catalog to the built-in catalog and Logger to a no-op.
type Deps struct {
	Gateway  *gateway.Gateway
	Ledger   credits.Ledger
	Briefs   store.BriefStore
	Users    store.UserRepository
	JWT      *JWTService
	Identity middleware.Authenticator
	Password *config.PasswordConfig
	Catalog  *catalog.Catalog
	Logger   *zap.Logger
}

func (d *Deps) validate() error {
	switch {
	case d.Gateway == nil:
		return fmt.Errorf("gateway is required")
	case d.Ledger == nil:
		return fmt.Errorf("ledger is required")
	case d.Briefs == nil:
		return fmt.Errorf("brief store is required")
	case d.Users == nil:
		return fmt.Errorf("user repository is required")
	case d.JWT == nil:
		return fmt.Errorf("JWT service is required")
	case d.Password == nil:
		return fmt.Errorf("password config is required")
	}
	return nil
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("invalid server dependencies: %w", err)
	}
	if deps.Identity == nil {
		deps.Identity = deps.JWT
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Builtin()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Server{
		gateway:     deps.Gateway,
		ledger:      deps.Ledger,
		briefs:      deps.Briefs,
		catalog:     deps.Catalog,
		identity:    deps.Identity,
		logger:      deps.Logger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.NewConfig(cfg.RateLimitPerMinute)),
		corsOrigins: slices.Clone(cfg.CORSAllowedOrigins),
		startedAt:   time.Now(),
	}

	userService := NewUserService(deps.Users, deps.Ledger, deps.Password, cfg.Credits)
	s.authHandler = NewAuthHandler(userService, deps.JWT)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	auth := middleware.AuthMiddleware(s.identity)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.Handle("PUT /api/auth/password", auth(http.HandlerFunc(s.authHandler.UpdatePassword)))

	// Generation authenticates through the gateway's identity provider
	mux.HandleFunc("POST /api/briefs/generate", s.handleGenerateBrief)
	mux.Handle("GET /api/briefs/{id}", auth(http.HandlerFunc(s.handleGetBrief)))
	mux.Handle("GET /api/briefs/{id}/export", auth(http.HandlerFunc(s.handleExportBrief)))

	// Per-user endpoints
	mux.Handle("GET /api/user/credits", auth(http.HandlerFunc(s.handleGetCredits)))
	mux.Handle("GET /api/user/credits/history", auth(http.HandlerFunc(s.handleCreditHistory)))
	mux.Handle("GET /api/user/briefs", auth(http.HandlerFunc(s.handleListUserBriefs)))

	return mux
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers for configured origins. A "*" entry allows any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	allowAny := slices.Contains(s.corsOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAny || slices.Contains(s.corsOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": errorCode(status), "message": message})
}

// handleError maps err to a status and writes it. Server faults are logged
// and their details withheld from the client.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP address) from the request.
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
