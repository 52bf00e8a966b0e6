package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/wzhuang/simpatient/backend/internal/config"
	"github.com/wzhuang/simpatient/backend/internal/model/persona"
)

// ArkProvider generates replies through a Volcengine Ark chat model behind
// an eino chain. The backend is expensive to acquire, so it is loaded at
// most once per process, on first use, and shared read-only afterwards.
type ArkProvider struct {
	cfg     config.ArkConfig
	timeout time.Duration

	once    sync.Once
	chain   compose.Runnable[map[string]any, *schema.Message]
	initErr error
}

// NewArkProvider returns an Ark-backed provider. No network or model work
// happens here; acquisition is deferred to the first Reply.
func NewArkProvider(cfg config.ArkConfig, timeout time.Duration) *ArkProvider {
	return &ArkProvider{cfg: cfg, timeout: timeout}
}

// ensureLoaded acquires the chat model and compiles the reply chain exactly
// once. Concurrent first callers block on the same acquisition instead of
// racing to load twice.
func (p *ArkProvider) ensureLoaded(ctx context.Context) error {
	p.once.Do(func() {
		started := time.Now()
		chatModel, err := p.cfg.NewChatModel(ctx)
		if err != nil {
			p.initErr = err
			return
		}

		promptTemplate := prompt.FromMessages(
			schema.FString,
			schema.SystemMessage("{system}"),
			schema.UserMessage("{query}"),
		)

		chain := compose.NewChain[map[string]any, *schema.Message]()
		chain.AppendChatTemplate(promptTemplate)
		chain.AppendChatModel(chatModel)

		runnable, err := chain.Compile(ctx)
		if err != nil {
			p.initErr = fmt.Errorf("compile chat chain: %w", err)
			return
		}

		p.chain = runnable
		log.Printf("[ai] ark backend ready, model=%s, took=%s", p.cfg.Model, time.Since(started))
	})
	return p.initErr
}

// Reply runs the persona prompt and the student utterance through the chain
// and returns the trimmed generation.
func (p *ArkProvider) Reply(ctx context.Context, patient persona.Persona, utterance string) (string, error) {
	if err := p.ensureLoaded(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	response, err := p.chain.Invoke(ctx, map[string]any{
		"system": BuildSystemPrompt(patient),
		"query":  utterance,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}

	reply := strings.TrimSpace(response.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: empty model output", ErrInference)
	}

	log.Printf("[ai] generated reply for persona=%s, length=%d", patient.ID(), len(reply))
	return reply, nil
}
