package ai

import (
	"context"

	"github.com/andresmx/sentimsg/internal/domain/ai"
)

type Service struct {
	client ai.Client
}

// NewService wraps an AI client; a nil client yields a service that always
// reports ai.ErrDisabled.
func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

// SummarizeReport turns an already-computed report document into a short
// prose summary. Classification itself never goes through the model.
func (s *Service) SummarizeReport(ctx context.Context, reportXML string) (string, error) {
	if s == nil || s.client == nil {
		return "", ai.ErrDisabled
	}
	return s.client.Summarize(ctx, reportXML)
}
