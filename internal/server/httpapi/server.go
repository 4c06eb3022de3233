// Package httpapi exposes the REST surface of the server. It is a thin
// boundary layer: handlers decode requests, call into the services, and map
// typed failures to status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"insightboard/internal/logging"
	"insightboard/internal/server/models"
	"insightboard/internal/server/services"
)

// SessionService is the slice of the session layer the HTTP surface needs.
type SessionService interface {
	Register(ctx context.Context, username, email, password string) (*services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// NoteService is the slice of the note layer the HTTP surface needs.
type NoteService interface {
	Create(ctx context.Context, userID, title, content string, isPublic bool) (*models.Note, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, noteID, userID, title, content string) error
	Delete(ctx context.Context, noteID, userID string) error
	SetVisibility(ctx context.Context, noteID, userID string, isPublic bool) error
	ListPublicByUsername(ctx context.Context, username string) ([]*models.Note, error)
	ListPublicPaged(ctx context.Context, pageNumber, pageSize int, sortBy string) (*services.PublicNotesPage, error)
}

// Server holds the handler dependencies and serves the REST API.
type Server struct {
	address   string
	sessions  SessionService
	notes     NoteService
	logger    logging.Logger
	jwtSecret []byte
}

// NewServer constructs the HTTP boundary for the given services.
func NewServer(address string, l logging.Logger, sessions SessionService, notes NoteService, secretKey string) *Server {
	return &Server{
		address:   address,
		sessions:  sessions,
		notes:     notes,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
