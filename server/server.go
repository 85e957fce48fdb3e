// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server implements the A2A server side: the JSON-RPC request
// router, the task lifecycle manager, and agent discovery.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/a2a-lite"
)

// AgentCardPath is the well-known path where the agent's descriptor is
// served.
const AgentCardPath = "/.well-known/agent.json"

// Server routes JSON-RPC requests to a [TaskManager] and serves the agent
// card. It implements [http.Handler].
type Server struct {
	card    a2a.AgentCard
	manager TaskManager
	logger  *slog.Logger
	tracer  trace.Tracer
	mux     *http.ServeMux
}

var _ http.Handler = (*Server)(nil)

// NewServer creates a new [Server] for the given agent card and task
// manager.
func NewServer(card a2a.AgentCard, manager TaskManager) (*Server, error) {
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent card: %w", err)
	}
	if manager == nil {
		return nil, errors.New("manager must not be nil")
	}

	s := &Server{
		card:    card,
		manager: manager,
		logger:  slog.Default(),
		tracer:  otel.Tracer("github.com/go-a2a/a2a-lite/server"),
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET "+AgentCardPath, s.handleAgentCard)
	s.mux.HandleFunc("POST /{$}", s.handleRPC)
	return s, nil
}

// WithLogger sets the logger to use.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.logger = logger
	return s
}

// WithTracerProvider sets the tracer provider to use.
func (s *Server) WithTracerProvider(tp trace.TracerProvider) *Server {
	s.tracer = tp.Tracer("github.com/go-a2a/a2a-lite/server")
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start serves the A2A endpoint on addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.logger.InfoContext(ctx, "a2a server listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, s.card); err != nil {
		s.logger.ErrorContext(r.Context(), "writing agent card", slog.Any("error", err))
	}
}

// handleRPC decodes the envelope, dispatches on the method discriminator,
// and writes exactly one of result or error.
//
// Decode and validation failures answer with id null: the request id cannot
// be trusted before the envelope parses and the params validate. Manager
// failures echo the request id.
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "a2a.server.handleRPC")
	defer span.End()

	var req a2a.JSONRPCRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		s.logger.WarnContext(ctx, "malformed rpc payload", slog.Any("error", err))
		s.writeResponse(ctx, w, http.StatusBadRequest,
			a2a.NewErrorResponse(a2a.ID{}, a2a.NewJSONParseError().WithData(err.Error())))
		return
	}

	switch req.Method {
	case a2a.MethodTasksSend:
		s.handleSendTask(ctx, w, &req)
	case a2a.MethodTasksGet:
		s.handleGetTask(ctx, w, &req)
	default:
		s.logger.WarnContext(ctx, "unknown rpc method", slog.String("method", req.Method))
		s.writeResponse(ctx, w, http.StatusBadRequest,
			a2a.NewErrorResponse(a2a.ID{}, a2a.NewMethodNotFoundError().WithData(req.Method)))
	}
}

func (s *Server) handleSendTask(ctx context.Context, w http.ResponseWriter, req *a2a.JSONRPCRequest) {
	var params a2a.TaskSendParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeResponse(ctx, w, http.StatusBadRequest,
			a2a.NewErrorResponse(a2a.ID{}, a2a.NewInvalidParamsError().WithData(err.Error())))
		return
	}
	if err := params.Validate(); err != nil {
		s.writeResponse(ctx, w, http.StatusBadRequest,
			a2a.NewErrorResponse(a2a.ID{}, a2a.NewInvalidParamsError().WithData(err.Error())))
		return
	}

	result, err := s.manager.OnSendTask(ctx, params)
	if err != nil {
		s.writeManagerError(ctx, w, req.ID, err)
		return
	}
	s.writeResponse(ctx, w, http.StatusOK, a2a.NewSendTaskResponse(req.ID, result))
}

func (s *Server) handleGetTask(ctx context.Context, w http.ResponseWriter, req *a2a.JSONRPCRequest) {
	var params a2a.TaskQueryParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeResponse(ctx, w, http.StatusBadRequest,
			a2a.NewErrorResponse(a2a.ID{}, a2a.NewInvalidParamsError().WithData(err.Error())))
		return
	}
	if err := params.Validate(); err != nil {
		s.writeResponse(ctx, w, http.StatusBadRequest,
			a2a.NewErrorResponse(a2a.ID{}, a2a.NewInvalidParamsError().WithData(err.Error())))
		return
	}

	result, err := s.manager.OnGetTask(ctx, params)
	if err != nil {
		s.writeManagerError(ctx, w, req.ID, err)
		return
	}
	s.writeResponse(ctx, w, http.StatusOK, a2a.NewGetTaskResponse(req.ID, result))
}

// writeManagerError translates a manager failure into a JSON-RPC error
// envelope. The transport itself worked, so the HTTP status stays 200.
func (s *Server) writeManagerError(ctx context.Context, w http.ResponseWriter, id a2a.ID, err error) {
	var notFound *a2a.TaskNotFoundError
	if errors.As(err, &notFound) {
		s.writeResponse(ctx, w, http.StatusOK,
			a2a.NewErrorResponse(id, a2a.NewTaskNotFoundRPCError().WithData(notFound.TaskID)))
		return
	}

	s.logger.ErrorContext(ctx, "task manager error", slog.Any("error", err))
	s.writeResponse(ctx, w, http.StatusOK,
		a2a.NewErrorResponse(id, a2a.NewInternalError().WithData(err.Error())))
}

func (s *Server) writeResponse(ctx context.Context, w http.ResponseWriter, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, resp); err != nil {
		s.logger.ErrorContext(ctx, "writing rpc response", slog.Any("error", err))
	}
}
