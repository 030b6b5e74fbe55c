package mockfeed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/five82/matchday/internal/feed"
)

// FeedPath is where the feed is mounted, matching the public host.
const FeedPath = "/MockSports/sports.json"

//go:embed sample.json
var sampleFeed []byte

// Server holds the HTTP server dependencies.
type Server struct {
	file   string
	logger *slog.Logger
	router chi.Router
}

// New builds a server for the feed at file. An empty file serves the bundled
// sample. The file is re-read on every request so edits show up on retry.
func New(file string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		file:   file,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Client-Platform", "X-App-Version", "X-Session-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get(FeedPath, s.handleFeed)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// handleFeed serves the feed. A fail=<status> query parameter forces that
// status, which makes the client's error paths easy to try by hand.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("fail"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil || code < 400 || code > 599 {
			http.Error(w, "fail must be an HTTP error status", http.StatusBadRequest)
			return
		}
		http.Error(w, http.StatusText(code), code)
		return
	}

	data, err := s.load()
	if err != nil {
		s.logger.Error("load feed", "file", s.file, "error", err)
		http.Error(w, "feed unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "max-age=5")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// load reads and validates the feed so a broken file is reported here rather
// than as a decode failure in the client.
func (s *Server) load() ([]byte, error) {
	data := sampleFeed
	if s.file != "" {
		var err error
		data, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read feed: %w", err)
		}
	}
	var sports []feed.Sport
	if err := json.Unmarshal(data, &sports); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return data, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
			"session", r.Header.Get("X-Session-ID"),
		)
	})
}
