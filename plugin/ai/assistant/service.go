// Package assistant wires the chat pipeline: classify, plan, profile, reply,
// suggest and build the memory delta for one message.
package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/zai/plugin/ai/adaptive"
	"github.com/hrygo/zai/plugin/ai/hint"
	"github.com/hrygo/zai/plugin/ai/memory"
	"github.com/hrygo/zai/plugin/ai/planner"
	"github.com/hrygo/zai/plugin/ai/reply"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/plugin/ai/suggestion"
	"github.com/hrygo/zai/plugin/ai/textutil"
)

// MaxMessageLength is the rune limit applied to incoming messages.
const MaxMessageLength = 600

// Request is one chat turn. Context, Memory and Planner hold decoded JSON
// and may be of any shape; they are normalized before use.
type Request struct {
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
	Memory  any    `json:"memory,omitempty"`
	Planner any    `json:"planner,omitempty"`
}

// Response is the full decision for one turn.
type Response struct {
	Reply        string                  `json:"reply"`
	Intent       router.Intent           `json:"intent"`
	Planner      planner.Frame           `json:"planner"`
	Suggestions  []suggestion.Suggestion `json:"suggestions"`
	Adaptive     adaptive.Profile        `json:"adaptive"`
	MemoryUpdate memory.Hint             `json:"memory_update"`
	Reliability  Reliability             `json:"reliability"`

	// Source is the classifier layer that decided the intent.
	Source router.Source `json:"-"`
}

// Service runs the pipeline. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	classifier router.IntentClassifier
	composer   *reply.Composer
}

// NewService creates a Service with the default tail rules.
func NewService(classifier router.IntentClassifier) (*Service, error) {
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}
	composer, err := reply.NewComposer(reply.DefaultTailRules())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create reply composer")
	}
	return &Service{classifier: classifier, composer: composer}, nil
}

// Process computes the response for req. It never fails; malformed hints
// fall back to defaults and embedding failures to rule-only classification.
func (s *Service) Process(ctx context.Context, req Request) Response {
	start := time.Now()
	msg := textutil.Truncate(textutil.CollapseSpaces(req.Message), MaxMessageLength)

	ctxHint := hint.NormalizeContext(req.Context)
	mem := memory.Normalize(req.Memory)
	planHint := planner.ParseHint(req.Planner)

	cls := s.classifier.Classify(ctx, msg)
	intent := cls.Intent

	frame := planner.Build(msg, intent, mem, planHint)
	profile := adaptive.Infer(msg, ctxHint, intent)

	text := reply.Select(intent, msg, reply.Vars(msg, intent, profile))
	text = s.composer.Compose(intent, msg, text, profile)

	suggestions := suggestion.Rank(suggestion.Input{
		Intent:  intent,
		Context: ctxHint,
		Profile: profile,
		Memory:  mem,
		Planner: frame,
	})

	resp := Response{
		Reply:        text,
		Intent:       intent,
		Planner:      frame,
		Suggestions:  suggestions,
		Adaptive:     profile,
		MemoryUpdate: memory.BuildUpdate(intent.String(), msg, mem, frame.ClarificationFields()),
		Reliability:  Assess(msg, frame, intent),
		Source:       cls.Source,
	}

	slog.Debug("chat turn processed",
		"intent", intent,
		"source", cls.Source,
		"actions", len(frame.Actions),
		"reliability", resp.Reliability.Status,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp
}

// ApplyFeedback folds one feedback event into the caller's profile. Both
// inputs are decoded JSON; ok is false when feedback is malformed.
func (s *Service) ApplyFeedback(rawProfile, rawFeedback any) (profile memory.FeedbackProfile, ok bool) {
	profile = memory.NormalizeFeedbackProfile(rawProfile)
	fb, ok := memory.NormalizeFeedback(rawFeedback)
	if !ok {
		return profile, false
	}
	return memory.ApplyFeedback(profile, fb), true
}
