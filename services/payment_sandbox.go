package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SandboxProcessor is the development stand-in for the real payment
// processor. It mints well-formed ids and approves every charge except
// the designated decline card, which is enough to exercise both sides
// of the confirm contract locally and in tests.
type SandboxProcessor struct {
	mu      sync.Mutex
	intents map[string]string // clientSecret -> intentID
}

// SandboxDeclineCard always produces a declined charge.
const SandboxDeclineCard = "card_declined"

func NewSandboxProcessor() *SandboxProcessor {
	return &SandboxProcessor{intents: make(map[string]string)}
}

func (s *SandboxProcessor) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*ProcessorIntent, error) {
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	secret := id + "_secret_" + uuid.NewString()[:8]
	s.mu.Lock()
	s.intents[secret] = id
	s.mu.Unlock()
	return &ProcessorIntent{IntentID: id, ClientSecret: secret}, nil
}

func (s *SandboxProcessor) ConfirmPayment(ctx context.Context, clientSecret, paymentMethod string) (*ChargeResult, error) {
	s.mu.Lock()
	intentID, ok := s.intents[clientSecret]
	s.mu.Unlock()
	if !ok {
		return &ChargeResult{Status: "failed"}, nil
	}
	if paymentMethod == SandboxDeclineCard {
		return &ChargeResult{IntentID: intentID, Status: "declined"}, nil
	}
	return &ChargeResult{
		IntentID: intentID,
		Status:   "succeeded",
		ChargeID: "ch_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Last4:    "4242",
	}, nil
}

func (s *SandboxProcessor) UpdateIntentMetadata(ctx context.Context, intentID string, metadata map[string]string) error {
	return nil
}
