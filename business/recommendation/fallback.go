package recommendation

import (
	"context"
	"errors"

	"styleMarket/domain"
	"styleMarket/pkg/logger"
)

const (
	sourceRemote  = "remote"
	sourceLocal   = "local"
	sourceCatalog = "catalog"
	sourceEmpty   = "empty"
)

var errStageSkipped = errors.New("stage skipped: recommender not configured")

// stage is one step of the fallback chain.
type stage struct {
	name string
	run  func(ctx context.Context) ([]domain.Candidate, error)
}

// reasoner is implemented by errors that can name their failure kind
// (gateway timeouts, bad responses and so on).
type reasoner interface {
	Reason() string
}

// runChain runs stages in order and returns the first non-empty result.
// Failures and empty results of non-final stages only advance the chain.
// The final stage's result is returned as is, even when empty; its error is
// the only one the caller sees.
func (s *Service) runChain(ctx context.Context, operation string, stages ...stage) ([]domain.Candidate, error) {
	traceID := logger.TraceIDFromContext(ctx)

	for i, st := range stages {
		final := i == len(stages)-1

		candidates, err := st.run(ctx)
		if err != nil {
			if final {
				logger.Error("recommendation chain failed",
					"operation", operation, "stage", st.name, "trace_id", traceID, "error", err)
				return nil, domain.NewInternalError(domain.CodeRecommendationFailed, "failed to build recommendations", err)
			}

			reason := failureReason(err)
			RecommendationFallbacksTotal.WithLabelValues(operation, st.name, reason).Inc()
			if errors.Is(err, errStageSkipped) {
				logger.Debug("recommendation stage skipped",
					"operation", operation, "stage", st.name, "trace_id", traceID)
			} else {
				logger.Warn("recommendation stage failed, falling back",
					"operation", operation, "stage", st.name, "reason", reason, "trace_id", traceID, "error", err)
			}
			continue
		}

		if len(candidates) == 0 && !final {
			RecommendationFallbacksTotal.WithLabelValues(operation, st.name, "empty").Inc()
			logger.Info("recommendation stage returned nothing usable, falling back",
				"operation", operation, "stage", st.name, "trace_id", traceID)
			continue
		}

		source := st.name
		if len(candidates) == 0 {
			source = sourceEmpty
		}
		RecommendationsServedTotal.WithLabelValues(operation, source).Inc()

		return candidates, nil
	}

	RecommendationsServedTotal.WithLabelValues(operation, sourceEmpty).Inc()
	return []domain.Candidate{}, nil
}

// remoteStage asks the recommender and resolves its answer against the
// catalog. It is skipped when no recommender is configured.
func (s *Service) remoteStage(limit int, fetch func(ctx context.Context) ([]domain.RemoteRecommendation, error)) stage {
	return stage{name: sourceRemote, run: func(ctx context.Context) ([]domain.Candidate, error) {
		if s.gateway == nil || !s.gateway.Configured() {
			return nil, errStageSkipped
		}

		recs, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		return s.resolve(ctx, recs, limit)
	}}
}

func failureReason(err error) string {
	if errors.Is(err, errStageSkipped) {
		return "not_configured"
	}
	var r reasoner
	if errors.As(err, &r) {
		return r.Reason()
	}
	return "error"
}
