// Package server exposes the question answering engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alanrezendeee/retechfin-rag/internal/engine"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

// Server routes HTTP requests to the engine. The engine itself is immutable
// after startup, so the server carries no request-scoped state.
type Server struct {
	engine  *engine.Engine
	timeout time.Duration
	log     logging.Logger
}

// New creates a Server. timeout bounds each request's external calls.
func New(eng *engine.Engine, timeout time.Duration, logger logging.Logger) *Server {
	return &Server{engine: eng, timeout: timeout, log: logger}
}

// Routes builds the handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ask", s.handleAsk)
	return RequestLogger(s.log, mux)
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, http.StatusBadRequest, "question must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	response, err := s.engine.Ask(ctx, req.Question)
	if err != nil {
		s.log.WithError(err).Error("Request failed")
		WriteError(w, statusFor(err), "failed to answer question")
		return
	}

	WriteJSON(w, http.StatusOK, response)
}

// statusFor maps request-scoped failures to status codes: collaborator
// failures are upstream errors, timeouts are 504, the rest is a plain 500.
func statusFor(err error) int {
	var embErr *ragerror.EmbeddingError
	var genErr *ragerror.GenerationError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &embErr), errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.Stats()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"stats":  stats,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	stats := s.engine.Stats()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "ledger question answering service is running",
		"records": stats.Records,
	})
}
