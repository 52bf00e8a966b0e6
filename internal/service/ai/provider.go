package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/wzhuang/simpatient/backend/internal/model/persona"
)

var (
	// ErrBackendUnavailable indicates the model backend could not be
	// acquired (credentials, network, load failure).
	ErrBackendUnavailable = errors.New("model backend unavailable")
	// ErrInference indicates the backend call itself failed or returned
	// empty output.
	ErrInference = errors.New("inference failed")
)

// Provider produces the simulated patient's reply to a student utterance.
// Implementations must be safe for concurrent use; a failed reply must never
// corrupt session state, only surface as an error.
type Provider interface {
	Reply(ctx context.Context, p persona.Persona, utterance string) (string, error)
}

// StubProvider answers with a deterministic template. It is the development
// and test backend; it has no failure modes.
type StubProvider struct{}

// NewStubProvider returns the canned-reply backend.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Reply echoes the utterance back under the persona's name.
func (*StubProvider) Reply(_ context.Context, p persona.Persona, utterance string) (string, error) {
	return fmt.Sprintf("(simulated%s's reply) you said: %s", p.Name, utterance), nil
}
