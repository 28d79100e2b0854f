// Package http exposes the service over a REST API. Handlers translate wire
// shapes into service calls and sentinel errors back into status codes; no
// business rule lives here.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dborovskis/filevault/internal/logging"
	"github.com/dborovskis/filevault/internal/server/auth"
	"github.com/dborovskis/filevault/internal/server/services"
	"github.com/dborovskis/filevault/internal/server/sessions"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	users    *services.UserService
	files    *services.FileService
	resolver *auth.Resolver
	sessions sessions.Store
	db       *sql.DB
}

func NewServer(a string, l logging.Logger, us *services.UserService, fs *services.FileService,
	r *auth.Resolver, store sessions.Store, db *sql.DB) (*Server, error) {
	return &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		files:    fs,
		resolver: r,
		sessions: store,
		db:       db,
	}, nil
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.identify())

	r.GET("/status", s.getStatus)
	r.GET("/stats", s.getStats)

	r.POST("/users", s.postUsers)
	r.GET("/connect", s.getConnect)
	r.GET("/disconnect", s.getDisconnect)
	r.GET("/users/me", s.getMe)

	r.POST("/files", s.postFiles)
	r.GET("/files", s.getFiles)
	r.GET("/files/:id", s.getFile)
	r.PUT("/files/:id/publish", s.putPublish(true))
	r.PUT("/files/:id/unpublish", s.putPublish(false))
	r.GET("/files/:id/data", s.getFileData)

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
