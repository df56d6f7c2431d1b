package coach

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	ProviderOpenAI = "openai"

	defaultOpenAIURL   = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-4o-mini"
)

const openAISystemPrompt = `You are an expert golf coach AI assistant for StrikeLab.
You help golfers improve by analyzing data, suggesting drills, and providing personalized coaching.

Player Context:
%s

Be encouraging, specific, and concise (2-4 paragraphs). Use golf terminology appropriately.`

type openAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	client  *guardedClient
	apiKey  string
	model   string
	baseURL string
}

// NewOpenAIProvider returns nil when no API key is configured.
func NewOpenAIProvider(s ProviderSettings, logger *logrus.Logger) *OpenAIProvider {
	if s.APIKey == "" {
		return nil
	}
	p := &OpenAIProvider{
		client:  newGuardedClient(ProviderOpenAI, s, logger),
		apiKey:  s.APIKey,
		model:   s.Model,
		baseURL: s.BaseURL,
	}
	if p.model == "" {
		p.model = defaultOpenAIModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultOpenAIURL
	}
	return p
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]Message, 0, len(req.History)+2)
	messages = append(messages, Message{Role: "system", Content: fmt.Sprintf(openAISystemPrompt, req.Context)})
	messages = append(messages, req.History...)
	messages = append(messages, Message{Role: "user", Content: req.Message})

	var resp openAIResponse
	err := p.client.postJSON(ctx, p.baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	}, openAIRequest{Model: p.model, Messages: messages, MaxTokens: maxResponseTokens}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: ProviderOpenAI, Err: errors.New("response has no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) CircuitState() gobreaker.State {
	return p.client.State()
}
