package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/strikelab/pkg/metrics"
)

// HistoryWindow is how many prior chat messages a provider sees.
const HistoryWindow = 6

// ProviderRuleBased names the deterministic fallback in replies and metrics.
const ProviderRuleBased = "rule_based"

// ErrProvider matches every *ProviderError.
var ErrProvider = errors.New("text generation provider failed")

// Message is one chat turn. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is what the chain hands to each provider.
type Request struct {
	Message string
	History []Message
	Context string
}

// Provider generates a coaching reply from an external service.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// ProviderError reports a failed provider call: transport error, timeout,
// non-2xx status, open circuit or an unusable body.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// Reply is the chain's answer and the provider that produced it.
type Reply struct {
	Content  string `json:"content"`
	Provider string `json:"provider"`
}

// Chain tries each provider in order and falls back to canned advice. It
// never returns an error.
type Chain struct {
	providers []Provider
	logger    *logrus.Logger
}

// NewChain builds a chain over providers, tried in the given order.
func NewChain(logger *logrus.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// ConfiguredProviders returns Anthropic then OpenAI, leaving out any without
// an API key.
func ConfiguredProviders(anthropic, openai ProviderSettings, logger *logrus.Logger) []Provider {
	var out []Provider
	if p := NewAnthropicProvider(anthropic, logger); p != nil {
		out = append(out, p)
	}
	if p := NewOpenAIProvider(openai, logger); p != nil {
		out = append(out, p)
	}
	return out
}

// Providers returns the names of the external providers in order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Respond answers req.Message. Provider failures are logged and the next
// provider is tried; when none succeeds the keyword fallback answers in lang.
func (c *Chain) Respond(ctx context.Context, req Request, lang string) Reply {
	if len(req.History) > HistoryWindow {
		req.History = req.History[len(req.History)-HistoryWindow:]
	}

	for _, p := range c.providers {
		if ctx.Err() != nil {
			break
		}

		text, err := p.Generate(ctx, req)
		if err == nil && strings.TrimSpace(text) == "" {
			err = &ProviderError{Provider: p.Name(), Err: errors.New("empty response")}
		}
		if err != nil {
			metrics.RecordTextGeneration(p.Name(), "error")
			c.logger.WithFields(logrus.Fields{
				"provider": p.Name(),
				"error":    err.Error(),
			}).Warn("Chat provider failed, trying next")
			continue
		}

		metrics.RecordTextGeneration(p.Name(), "success")
		return Reply{Content: text, Provider: p.Name()}
	}

	metrics.RecordTextGeneration(ProviderRuleBased, "success")
	return Reply{Content: FallbackResponse(req.Message, lang), Provider: ProviderRuleBased}
}
