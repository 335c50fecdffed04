// Package httpapi exposes the vault over a JSON-over-HTTP surface. Every
// operation is a POST; successes answer 200 with {message, data?} and
// failures pass through the uniform error translator.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avolkov/passvault/internal/logging"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     UserProvider
	vault     VaultProvider
	jwtSecret []byte
}

func NewServer(address string, logger logging.Logger, users UserProvider, vault VaultProvider, jwtSecret string) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "httpapi"),
		users:     users,
		vault:     vault,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/signup", postOnly(s.handleSignup))
	mux.HandleFunc("/login", postOnly(s.handleLogin))

	mux.HandleFunc("/save-password", postOnly(s.requireAuth(s.handleSavePassword)))
	mux.HandleFunc("/list-saved-passwords", postOnly(s.requireAuth(s.handleListSavedPasswords)))
	mux.HandleFunc("/share-password", postOnly(s.requireAuth(s.handleSharePassword)))
	mux.HandleFunc("/list-shared-passwords", postOnly(s.requireAuth(s.handleListSharedPasswords)))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
