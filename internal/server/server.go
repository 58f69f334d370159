// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/identity"
	"github.com/jonathan/resume-builder/internal/store"
)

// Server represents the HTTP server. It owns one session: a document state
// controller and an identity transition controller sharing one store. The
// mutex serializes session mutations so every user event runs to completion
// before the next is processed.
type Server struct {
	httpServer *http.Server
	store      *store.SQLiteStore

	mu       sync.Mutex
	docCtl   *document.Controller
	identCtl *identity.Controller

	users *identity.UserService
	jwt   *identity.JWTService
}

// Config holds server configuration
type Config struct {
	Port      int
	StorePath string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		store:    st,
		docCtl:   document.NewController(st),
		identCtl: identity.NewController(st),
		users:    identity.NewUserService(st, passwordConfig),
		jwt:      identity.NewJWTService(jwtConfig),
	}

	// Restore identity first, then load the matching scope's document;
	// the two never interleave for the same scope.
	ctx := context.Background()
	if err := s.identCtl.Restore(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to restore identity: %w", err)
	}
	if err := s.docCtl.Load(ctx, s.identCtl.Scope()); err != nil {
		// Degraded to defaults in memory; the user is never blocked.
		log.Printf("[server] degraded document load: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	mux.HandleFunc("GET /session", s.handleGetSession)
	mux.HandleFunc("POST /session/dismiss-banner", s.handleDismissBanner)
	mux.HandleFunc("PUT /users/me", s.requireAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /document", s.handleGetDocument)
	mux.HandleFunc("PUT /document/sections/{section}", s.handleUpdateSection)
	mux.HandleFunc("PUT /document/template", s.handleSetTemplate)
	mux.HandleFunc("GET /document/completeness", s.handleGetCompleteness)
	mux.HandleFunc("GET /export", s.handleExport)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Close releases the underlying store without starting the listener.
func (s *Server) Close() error {
	return s.store.Close()
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

	if err := s.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

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

// requireAuth validates the bearer token and requires it to match the active
// session identity.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := s.jwt.ValidateToken(token)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		s.mu.Lock()
		ident := s.identCtl.Identity()
		s.mu.Unlock()
		if ident == nil || ident.Email != claims.Email {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next(w, r)
	}
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
