// Package api implements the HTTP chat API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/navan-labs/navan/internal/assistant"
	"github.com/navan-labs/navan/internal/buildinfo"
	"github.com/navan-labs/navan/internal/transcript"
	"github.com/navan-labs/navan/internal/web"
)

// writeJSON encodes v as JSON to w, logging any errors at debug level.
// Errors here typically mean the client disconnected mid-response,
// which is not actionable but worth tracking for debugging.
func writeJSON(w http.ResponseWriter, v any, logger *slog.Logger) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("failed to write JSON response", "error", err)
	}
}

// Server is the HTTP API server.
type Server struct {
	address     string
	port        int
	asst        *assistant.Assistant
	transcripts *transcript.Store // optional
	logger      *slog.Logger
	server      *http.Server
}

// NewServer creates a new API server.
func NewServer(address string, port int, asst *assistant.Assistant, logger *slog.Logger) *Server {
	return &Server{
		address: address,
		port:    port,
		asst:    asst,
		logger:  logger.With("component", "api"),
	}
}

// SetTranscripts enables the history and export endpoints.
func (s *Server) SetTranscripts(ts *transcript.Store) {
	s.transcripts = ts
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/ws", s.handleWS)

	mux.HandleFunc("GET /api/version", s.handleVersion)
	mux.HandleFunc("GET /health", s.handleHealth)
	// "GET /{$}" matches the root path only; web.RegisterRoutes adds a
	// method-less "/chat" below, which would conflict with "GET /".
	mux.HandleFunc("GET /{$}", s.handleRoot)

	// Session history comes from the durable transcript when one is
	// configured, else from in-memory sessions.
	mux.HandleFunc("GET /api/sessions/{id}/history", s.handleSessionHistory)
	mux.HandleFunc("GET /api/sessions/{id}/export", s.handleSessionExport)
	mux.HandleFunc("GET /api/sessions", s.handleSessionList)

	// Chat web UI
	web.RegisterRoutes(mux)

	return mux
}

// Start begins serving HTTP requests.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:      s.withLogging(s.routes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	addr := s.address
	if addr == "" {
		addr = "0.0.0.0"
	}
	s.logger.Info("starting API server", "address", addr, "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{
		"name":    "Navan",
		"version": buildinfo.Version,
		"status":  "ok",
	}, s.logger)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, buildinfo.Info(), s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "healthy"}, s.logger)
}

// ChatRequest is the POST /api/chat request body.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the POST /api/chat response body.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	res := s.asst.ProcessTurn(r.Context(), req.SessionID, req.Message)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ChatResponse{
		SessionID: res.SessionID,
		Reply:     res.Reply,
		Intent:    string(res.Intent),
	}, s.logger)
}

func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	type entry struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	var history []entry

	if s.transcripts != nil {
		turns, err := s.transcripts.Turns(id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "history lookup failed")
			return
		}
		for _, t := range turns {
			history = append(history, entry{Role: t.Role, Content: t.Content})
		}
	} else if sess := s.asst.Sessions().Lookup(id); sess != nil {
		for _, m := range sess.Recent(0) {
			history = append(history, entry{Role: m.Role, Content: m.Content})
		}
	}

	if history == nil {
		s.errorResponse(w, http.StatusNotFound, "unknown session")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{"session_id": id, "history": history}, s.logger)
}

func (s *Server) handleSessionList(w http.ResponseWriter, r *http.Request) {
	if s.transcripts == nil {
		s.errorResponse(w, http.StatusNotFound, "transcripts disabled")
		return
	}
	ids, err := s.transcripts.SessionIDs()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "session list failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{"sessions": ids}, s.logger)
}

func (s *Server) handleSessionExport(w http.ResponseWriter, r *http.Request) {
	if s.transcripts == nil {
		s.errorResponse(w, http.StatusNotFound, "transcripts disabled")
		return
	}
	id := r.PathValue("id")

	switch r.URL.Query().Get("format") {
	case "", "markdown", "md":
		md, err := s.transcripts.ExportMarkdown(id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, md)
	case "html":
		html, err := s.transcripts.ExportHTML(id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown format")
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeJSON(w, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    code,
		},
	}, s.logger)
}
