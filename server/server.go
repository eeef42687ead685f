// Package server exposes the assessment service over HTTP: the chat
// endpoint backed by the response engine, survey submission and scoring,
// profile and purchase CRUD, and a health probe.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	commsig "github.com/commsiglabs/commsig-go"
)

// Server wires the response engine, storage and payment gateway into an
// HTTP API.
//
// Usage:
//
//	cfg, _ := commsig.NewServiceConfigFromEnv()
//	srv := server.New(cfg, commsig.NewInMemoryStorage())
//	srv.Run()
type Server struct {
	// Config is the service configuration.
	Config *commsig.ServiceConfig
	// Storage persists profiles, assessments and purchases.
	Storage commsig.Storage
	// Gateway captures purchases. Defaults to the mock gateway.
	Gateway commsig.PaymentGateway
	// Responder is the dialogue engine.
	Responder *commsig.Responder

	logger    *zap.Logger
	startedAt time.Time
}

// New creates a Server with the default engine and the mock gateway.
func New(cfg *commsig.ServiceConfig, storage commsig.Storage) *Server {
	return &Server{
		Config:    cfg,
		Storage:   storage,
		Gateway:   commsig.MockGateway{},
		Responder: commsig.NewResponder(),
		logger:    zap.NewNop(),
		startedAt: time.Now(),
	}
}

// SetLogger replaces the no-op logger.
func (s *Server) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/survey", s.handleSurvey)
	mux.HandleFunc("POST /api/assessments", s.handleSubmitAssessment)
	mux.HandleFunc("GET /api/assessments/{id}", s.handleGetAssessment)
	mux.HandleFunc("GET /api/profiles/{user_id}", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profiles/{user_id}", s.handlePutProfile)
	mux.HandleFunc("POST /api/purchases", s.handleCreatePurchase)
	mux.HandleFunc("GET /api/purchases/{user_id}", s.handleListPurchases)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return Chain(mux,
		RequestID(),
		RequestLog(s.logger, s.Config.LogRequests),
		Recover(s.logger),
		MaxBytes(s.Config.MaxMessageBytes),
	)
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM or a listen
// failure, then shuts down gracefully and closes the storage backend.
func (s *Server) Run() error {
	s.logger.Info("starting", zap.String("config", s.Config.Summary()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	httpSrv := &http.Server{
		Addr:              s.Config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	s.logger.Info("service running", zap.String("addr", s.Config.Addr))

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
	}

	s.logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.Storage.Close(); err != nil {
		s.logger.Warn("storage close", zap.Error(err))
	}
	s.logger.Info("goodbye")
	return nil
}
