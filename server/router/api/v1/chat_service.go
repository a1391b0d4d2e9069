package v1

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/zai/plugin/ai/assistant"
	"github.com/hrygo/zai/plugin/ai/memory"
	aierrors "github.com/hrygo/zai/server/internal/errors"
	"github.com/hrygo/zai/server/internal/observability"
)

const (
	// MaxBodyBytes is the request body limit for chat endpoints.
	MaxBodyBytes = 8 * 1024

	chatEndpoint = "/api/chat"
	serviceName  = "zai"
)

// Processor is the part of assistant.Service the handlers need.
type Processor interface {
	Process(ctx context.Context, req assistant.Request) assistant.Response
	ApplyFeedback(rawProfile, rawFeedback any) (memory.FeedbackProfile, bool)
}

// ChatService serves the stateless chat endpoints.
type ChatService struct {
	Assistant       Processor
	Metrics         *observability.Metrics
	SemanticEnabled bool
	Logger          *slog.Logger
}

// ChatResponse is the assistant output plus a response id the client
// echoes back with feedback.
type ChatResponse struct {
	assistant.Response
	ResponseID string `json:"response_id"`
}

// FeedbackResponse carries the updated feedback profile.
type FeedbackResponse struct {
	FeedbackProfile memory.FeedbackProfile `json:"feedback_profile"`
}

// HealthResponse describes the service.
type HealthResponse struct {
	OK              bool   `json:"ok"`
	Service         string `json:"service"`
	Endpoint        string `json:"endpoint"`
	Mode            string `json:"mode"`
	SemanticEnabled bool   `json:"semantic_enabled"`
}

// RegisterRoutes mounts the chat endpoints on g.
func (s *ChatService) RegisterRoutes(g *echo.Group) {
	g.GET("/chat", s.Health)
	g.POST("/chat", s.Chat, s.withRequestContext)
	g.POST("/chatbot", s.Chat, s.withRequestContext)
	g.POST("/chat/feedback", s.Feedback, s.withRequestContext)
	g.GET("/chat/metrics", s.GetMetrics)
}

// Health reports the service mode.
// GET /api/chat
func (s *ChatService) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		OK:              true,
		Service:         serviceName,
		Endpoint:        chatEndpoint,
		Mode:            "stateless",
		SemanticEnabled: s.SemanticEnabled,
	})
}

// Chat processes one message.
// POST /api/chat {message, context?, memory?, planner?}
func (s *ChatService) Chat(c echo.Context) error {
	reqCtx := requestContextOf(c)

	payload, err := readPayload(c.Request().Body)
	if err != nil {
		return s.fail(c, reqCtx, err)
	}
	message, _ := payload["message"].(string)
	if strings.TrimSpace(message) == "" {
		return s.fail(c, reqCtx, aierrors.InvalidArgument("message is required"))
	}

	resp := s.Assistant.Process(c.Request().Context(), assistant.Request{
		Message: message,
		Context: payload["context"],
		Memory:  payload["memory"],
		Planner: payload["planner"],
	})

	if s.Metrics != nil {
		s.Metrics.RecordTurn(resp.Intent.String(), string(resp.Source), reqCtx.Duration())
	}
	reqCtx.Info("chat turn",
		slog.String(observability.LogFieldIntent, resp.Intent.String()),
		slog.String(observability.LogFieldSource, string(resp.Source)),
		slog.Int(observability.LogFieldMessageLen, utf8.RuneCountInString(message)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, ChatResponse{Response: resp, ResponseID: shortuuid.New()})
}

// Feedback folds a helpful / not helpful vote into the caller's profile.
// POST /api/chat/feedback {feedback_profile?, feedback}
func (s *ChatService) Feedback(c echo.Context) error {
	reqCtx := requestContextOf(c)

	payload, err := readPayload(c.Request().Body)
	if err != nil {
		return s.fail(c, reqCtx, err)
	}
	profile, ok := s.Assistant.ApplyFeedback(payload["feedback_profile"], payload["feedback"])
	if !ok {
		return s.fail(c, reqCtx, aierrors.InvalidArgument("feedback.helpful must be a boolean"))
	}

	reqCtx.Debug("feedback applied", slog.Int("total", profile.Total))
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, FeedbackResponse{FeedbackProfile: profile})
}

// GetMetrics returns the in-process turn counters.
// GET /api/chat/metrics
func (s *ChatService) GetMetrics(c echo.Context) error {
	if s.Metrics == nil {
		return c.JSON(http.StatusOK, observability.NewMetrics(1).Snapshot())
	}
	return c.JSON(http.StatusOK, s.Metrics.Snapshot())
}

// withRequestContext attaches a RequestContext to the request, reusing the
// caller's X-Request-ID when present.
func (s *ChatService) withRequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		req := c.Request()
		reqCtx := observability.NewRequestContextWithID(logger, req.Header.Get(echo.HeaderXRequestID), c.Path(), c.RealIP())
		c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), reqCtx)))
		c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)
		return next(c)
	}
}

func requestContextOf(c echo.Context) *observability.RequestContext {
	if reqCtx, ok := observability.FromContext(c.Request().Context()); ok {
		return reqCtx
	}
	return observability.NewRequestContext(slog.Default(), c.Path(), c.RealIP())
}

func (s *ChatService) fail(c echo.Context, reqCtx *observability.RequestContext, err error) error {
	var aiErr *aierrors.AIError
	if !stderrors.As(err, &aiErr) {
		aiErr = aierrors.Wrap(err, aierrors.ErrCodeInternal, "internal error")
	}
	if s.Metrics != nil {
		s.Metrics.RecordFailure()
	}
	reqCtx.Warn("chat request rejected",
		slog.String(observability.LogFieldErrorCode, string(aiErr.Code)),
		slog.String("reason", aiErr.Message),
	)
	return c.JSON(aiErr.HTTPStatus(), map[string]string{
		"error": aiErr.Message,
		"code":  string(aiErr.Code),
	})
}

// readPayload reads at most MaxBodyBytes. A body that is not a JSON object
// decodes to an empty payload so field checks report the problem.
func readPayload(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrCodeInvalidArgument, "failed to read request body")
	}
	if len(raw) > MaxBodyBytes {
		return nil, aierrors.PayloadTooLarge(MaxBodyBytes)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return map[string]any{}, nil
	}
	return payload, nil
}
