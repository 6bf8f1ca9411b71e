package retrieval

import (
	"go.uber.org/zap"

	"krishisahay/internal/domain"
)

// Chain evaluates named retrieval strategies in order until one answers.
// The keyword strategy never fails, so a chain ending in it always produces
// a string; strategy failures are logged, never propagated to the caller.
type Chain struct {
	strategies []domain.Retriever
	logger     *zap.Logger
}

// NewChain builds a fallback chain. Order matters: strategies are tried
// front to back.
func NewChain(logger *zap.Logger, strategies ...domain.Retriever) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{strategies: strategies, logger: logger}
}

// RetrieveOffline is the single entry point the rest of the application
// calls. It always returns a displayable answer.
func (c *Chain) RetrieveOffline(query string, topK int) string {
	for _, s := range c.strategies {
		answer, err := s.Retrieve(query, topK)
		if err != nil {
			c.logger.Warn("retrieval strategy unavailable, falling back",
				zap.String("strategy", s.Name()), zap.Error(err))
			continue
		}
		c.logger.Debug("retrieval strategy answered", zap.String("strategy", s.Name()))
		return answer
	}
	return NoticeNoOfflineData
}

// Strategies lists the configured strategy names in evaluation order.
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}
