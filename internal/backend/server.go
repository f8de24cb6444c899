// Package backend is a reference implementation of the text-processing
// endpoint: POST /process turns {"text"} into {"result"} or {"error"}.
package backend

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Rorical/StudyAssist/internal/logging"
	"github.com/Rorical/StudyAssist/internal/remote"
)

const (
	ProcessPath = "/process"

	msgNoText         = "No text provided"
	msgInvalidBody    = "Invalid request body"
	msgProcessFailure = "Failed to process text"

	maxBodyBytes = 1 << 20
)

type Server struct {
	generator Generator
	logger    *slog.Logger
}

// NewHandler creates the HTTP handler serving the process endpoint.
func NewHandler(gen Generator, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{generator: gen, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(s.logRequests)

	r.Post(ProcessPath, s.Process)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// Process handles POST /process.
func (s *Server) Process(w http.ResponseWriter, r *http.Request) {
	var body remote.ProcessRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.logger.Warn("process: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, remote.ProcessResponse{Error: msgInvalidBody})
		return
	}

	if strings.TrimSpace(body.Text) == "" {
		writeJSON(w, http.StatusBadRequest, remote.ProcessResponse{Error: msgNoText})
		return
	}

	result, err := s.generator.Generate(r.Context(), body.Text)
	if err != nil {
		s.logger.Error("process: generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, remote.ProcessResponse{Error: msgProcessFailure})
		return
	}

	writeJSON(w, http.StatusOK, remote.ProcessResponse{Result: &result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// The original client is a browser page served from another origin.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
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
			"duration", time.Since(start),
		)
	})
}
