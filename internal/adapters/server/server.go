// Package server serves the browser spec runner and static directories for
// local development.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/unrolled/secure"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	shutdownTimeout = 5 * time.Second
)

var _ ports.DevServer = (*Server)(nil)

// Server implements ports.DevServer over net/http with a gorilla/mux router.
type Server struct {
	logger ports.Logger
}

// NewServer creates a new Server.
func NewServer(logger ports.Logger) *Server {
	return &Server{logger: logger}
}

// ServeSpecs serves the browser spec runner until ctx is cancelled.
func (s *Server) ServeSpecs(ctx context.Context, addr, root string, specs func() ([]string, error)) error {
	return s.serve(ctx, addr, SpecsHandler(root, specs))
}

// ServeDir serves dir as static files until ctx is cancelled.
func (s *Server) ServeDir(ctx context.Context, addr, dir string) error {
	return s.serve(ctx, addr, DirHandler(dir))
}

func (s *Server) serve(ctx context.Context, addr string, handler http.Handler) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}

	srv := &http.Server{
		Handler:      secureMiddleware().Handler(handler),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	s.logger.Info(fmt.Sprintf("Serving on http://%s", ln.Addr()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
}

func secureMiddleware() *secure.Secure {
	return secure.New(secure.Options{
		IsDevelopment:      true,
		BrowserXssFilter:   true,
		ContentTypeNosniff: true,
		FrameDeny:          true,
	})
}

// DirHandler serves the files below dir.
func DirHandler(dir string) http.Handler {
	r := mux.NewRouter()
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
	return r
}
