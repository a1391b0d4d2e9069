// Package server hosts the stateless chat API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/zai/internal/profile"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/plugin/ai/timeout"
	apiv1 "github.com/hrygo/zai/server/router/api/v1"
)

type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
}

func NewServer(ctx context.Context, profile *profile.Profile) (*Server, error) {
	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = timeout.ServerReadTimeout
	echoServer.Server.WriteTimeout = timeout.ServerWriteTimeout
	echoServer.Use(middleware.Recover())

	s := &Server{
		Profile:    profile,
		echoServer: echoServer,
	}

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiV1Service, err := apiv1.NewAPIV1Service(profile, router.NewCentroidCache())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create api v1 service")
	}
	if err := apiV1Service.RegisterGateway(ctx, echoServer); err != nil {
		return nil, errors.Wrap(err, "failed to register gateway")
	}
	s.apiV1 = apiV1Service

	return s, nil
}

// Handler exposes the routed echo instance, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Start blocks serving on the profile address until Shutdown is called.
func (s *Server) Start(_ context.Context) error {
	address := net.JoinHostPort(s.Profile.Addr, fmt.Sprint(s.Profile.Port))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	s.echoServer.Listener = listener

	slog.Info("chat server started",
		"address", address,
		"mode", s.Profile.Mode,
		"semantic_enabled", s.apiV1.ChatService.SemanticEnabled,
	)
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start echo server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, timeout.ShutdownTimeout)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	slog.Info("chat server stopped properly")
}
