package coach

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	ProviderAnthropic = "anthropic"

	defaultAnthropicURL   = "https://api.anthropic.com/v1"
	defaultAnthropicModel = "claude-3-haiku-20240307"
	anthropicVersion      = "2023-06-01"
)

const anthropicSystemPrompt = `You are an expert golf coach AI assistant for StrikeLab, a golf performance tracking app.
You help golfers improve their game by analyzing their data, suggesting drills, and providing personalized coaching.

Player Context:
%s

Guidelines:
- Be encouraging but honest about areas needing work
- Provide specific, actionable drills when relevant
- Reference their data when available
- Keep responses concise (2-4 paragraphs max)
- Use golf terminology appropriately
- If asked about something outside golf, politely redirect to golf topics
- Never make up statistics or data - only reference what's provided`

type anthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	client  *guardedClient
	apiKey  string
	model   string
	baseURL string
}

// NewAnthropicProvider returns nil when no API key is configured.
func NewAnthropicProvider(s ProviderSettings, logger *logrus.Logger) *AnthropicProvider {
	if s.APIKey == "" {
		return nil
	}
	p := &AnthropicProvider{
		client:  newGuardedClient(ProviderAnthropic, s, logger),
		apiKey:  s.APIKey,
		model:   s.Model,
		baseURL: s.BaseURL,
	}
	if p.model == "" {
		p.model = defaultAnthropicModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultAnthropicURL
	}
	return p
}

func (p *AnthropicProvider) Name() string { return ProviderAnthropic }

// Generate sends the history plus the new message with the player context
// as the system prompt.
func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	messages := append(append([]Message(nil), req.History...), Message{Role: "user", Content: req.Message})
	body := anthropicRequest{
		Model:     p.model,
		MaxTokens: maxResponseTokens,
		System:    fmt.Sprintf(anthropicSystemPrompt, req.Context),
		Messages:  messages,
	}

	var resp anthropicResponse
	err := p.client.postJSON(ctx, p.baseURL+"/messages", map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}, body, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", &ProviderError{Provider: ProviderAnthropic, Err: errors.New("response has no content blocks")}
	}
	return resp.Content[0].Text, nil
}

func (p *AnthropicProvider) CircuitState() gobreaker.State {
	return p.client.State()
}
