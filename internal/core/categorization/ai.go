package categorization

import (
	"context"
	"log/slog"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// minAIScore is the cutoff below which an AI guess is discarded outright
// rather than passed through at lower confidence.
const minAIScore = 0.7

// Classifier is the narrow contract the AI strategy requires from the
// external classification collaborator.
type Classifier interface {
	// Classify returns a category guess and a score in [0,1] for the given
	// transaction description.
	Classify(ctx context.Context, description string) (categoryID string, score float64, err error)
}

// AIStrategy delegates to an external classification service. A collaborator
// failure or timeout is absorbed as a declined attempt so the chain can fall
// through to the manual handler; it is never surfaced as a pipeline error.
type AIStrategy struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewAIStrategy creates an AI strategy over the given classifier.
func NewAIStrategy(classifier Classifier, logger *slog.Logger) *AIStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &AIStrategy{classifier: classifier, logger: logger}
}

// Name implements Strategy.
func (s *AIStrategy) Name() string { return "ai" }

// Categorize implements Strategy. Guesses scoring at least minAIScore are
// returned at Medium confidence; lower-scoring guesses are declined, not
// downgraded.
func (s *AIStrategy) Categorize(ctx context.Context, txn *domain.Transaction) *Result {
	if s.classifier == nil {
		return nil
	}
	categoryID, score, err := s.classifier.Classify(ctx, txn.Description)
	if err != nil {
		s.logger.Warn("AI classification unavailable, declining",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
		return nil
	}
	if categoryID == "" || score < minAIScore {
		s.logger.Debug("AI guess below confidence cutoff, declining",
			slog.String("transaction_id", txn.TransactionID),
			slog.Float64("score", score))
		return nil
	}
	return &Result{
		CategoryID: categoryID,
		Confidence: domain.ConfidenceMedium,
		Method:     domain.MethodAI,
	}
}
