package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/zai/internal/profile"
	"github.com/hrygo/zai/plugin/ai"
	"github.com/hrygo/zai/plugin/ai/assistant"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/server/internal/observability"
	ratelimit "github.com/hrygo/zai/server/middleware"
)

type APIV1Service struct {
	Profile     *profile.Profile
	ChatService *ChatService

	limiter *ratelimit.RateLimiter
}

// NewAPIV1Service wires the decision core for profile. The centroid cache is
// shared across services built in the same process.
func NewAPIV1Service(profile *profile.Profile, cache *router.CentroidCache) (*APIV1Service, error) {
	aiConfig := ai.NewConfigFromProfile(profile)
	classifier := router.NewServiceFromConfig(aiConfig, cache)

	core, err := assistant.NewService(classifier)
	if err != nil {
		return nil, err
	}

	return &APIV1Service{
		Profile: profile,
		ChatService: &ChatService{
			Assistant:       core,
			Metrics:         observability.NewMetrics(0),
			SemanticEnabled: classifier.SemanticEnabled(),
			Logger:          slog.Default(),
		},
		limiter: ratelimit.NewRateLimiter(),
	}, nil
}

// RegisterGateway registers the chat endpoints with the given Echo instance.
func (s *APIV1Service) RegisterGateway(_ context.Context, echoServer *echo.Echo) error {
	corsHandler := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	})

	// Preflight requests never match a route, so CORS sits on the root.
	echoServer.Use(corsHandler)
	apiGroup := echoServer.Group("/api", s.limiter.Middleware())
	s.ChatService.RegisterRoutes(apiGroup)
	return nil
}
