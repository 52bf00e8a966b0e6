package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wzhuang/simpatient/backend/internal/config"
	"github.com/wzhuang/simpatient/backend/internal/model/persona"
)

// OpenAIProvider generates replies through the OpenAI chat completions API.
// It offers the same contract as ArkProvider for deployments without Ark
// credentials.
type OpenAIProvider struct {
	cfg     config.OpenAIConfig
	timeout time.Duration

	once    sync.Once
	client  *openai.Client
	initErr error
}

// NewOpenAIProvider returns an OpenAI-backed provider. The client is built
// lazily on first Reply.
func NewOpenAIProvider(cfg config.OpenAIConfig, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{cfg: cfg, timeout: timeout}
}

func (p *OpenAIProvider) ensureLoaded() error {
	p.once.Do(func() {
		if !p.cfg.Enabled() {
			p.initErr = fmt.Errorf("OPENAI_API_KEY is not set")
			return
		}
		p.client = openai.NewClient(p.cfg.APIKey)
	})
	return p.initErr
}

// Reply sends the persona prompt and the student utterance to the chat
// completions API and returns the trimmed answer.
func (p *OpenAIProvider) Reply(ctx context.Context, patient persona.Persona, utterance string) (string, error) {
	if err := p.ensureLoaded(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(patient)},
			{Role: openai.ChatMessageRoleUser, Content: utterance},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrInference)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: empty model output", ErrInference)
	}
	return reply, nil
}
