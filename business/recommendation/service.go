package recommendation

import (
	"context"
	"fmt"

	"styleMarket/domain"
	"styleMarket/pkg/logger"
)

const (
	DefaultLimit     = 10
	MaxLimit         = 50
	DefaultUserLimit = 20
)

// CatalogRepository is the read-only catalog view the engine needs.
// FindByIDs does not guarantee order; FindByID returns nil, nil for an
// unknown id.
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// RecommenderGateway is the external recommendation service. Results are
// already normalized and deduplicated.
type RecommenderGateway interface {
	Configured() bool
	Similar(ctx context.Context, productID string, limit int) ([]domain.RemoteRecommendation, error)
	Personal(ctx context.Context, profile domain.PreferenceProfile, limit int) ([]domain.RemoteRecommendation, error)
	ForUser(ctx context.Context, userID uint, limit int) ([]domain.RemoteRecommendation, error)
}

type Service struct {
	catalog CatalogRepository
	gateway RecommenderGateway
}

// NewService builds the engine. A nil gateway behaves like an unconfigured one.
func NewService(catalog CatalogRepository, gateway RecommenderGateway) *Service {
	return &Service{
		catalog: catalog,
		gateway: gateway,
	}
}

// GetSimilar recommends products similar to productID: the remote service
// first, then catalog neighbours of the same category and gender.
func (s *Service) GetSimilar(ctx context.Context, productID string, limit int, language string) ([]domain.CandidateView, error) {
	id, err := ValidateProductID(productID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = clampLimit(limit, DefaultLimit, MaxLimit)

	candidates, err := s.runChain(ctx, "similar",
		s.remoteStage(limit, func(ctx context.Context) ([]domain.RemoteRecommendation, error) {
			return s.gateway.Similar(ctx, id, limit)
		}),
		stage{name: sourceCatalog, run: func(ctx context.Context) ([]domain.Candidate, error) {
			return s.catalogNeighbours(ctx, id, limit)
		}},
	)
	if err != nil {
		return nil, err
	}

	return domain.CandidateViews(candidates, language), nil
}

// GetPersonalized recommends products for a stated preference profile: the
// remote service first, then the local similarity scorer.
func (s *Service) GetPersonalized(ctx context.Context, req ProfileRequest, limit int, language string) ([]domain.CandidateView, error) {
	profile, err := req.Profile()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = clampLimit(limit, DefaultLimit, MaxLimit)

	candidates, err := s.runChain(ctx, "personal",
		s.remoteStage(limit, func(ctx context.Context) ([]domain.RemoteRecommendation, error) {
			return s.gateway.Personal(ctx, profile, limit)
		}),
		s.localStage(profile, limit),
	)
	if err != nil {
		return nil, err
	}

	return domain.CandidateViews(candidates, language), nil
}

// GetForUser recommends products for an authenticated user. Without a usable
// remote answer the user has no stated profile, so the local scorer falls
// back to bestseller order.
func (s *Service) GetForUser(ctx context.Context, userID uint, limit int, language string) ([]domain.CandidateView, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = clampLimit(limit, DefaultUserLimit, MaxLimit)

	candidates, err := s.runChain(ctx, "user",
		s.remoteStage(limit, func(ctx context.Context) ([]domain.RemoteRecommendation, error) {
			return s.gateway.ForUser(ctx, userID, limit)
		}),
		s.localStage(domain.PreferenceProfile{}, limit),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("user recommendations served", "user_id", userID, "count", len(candidates), "trace_id", logger.TraceIDFromContext(ctx))
	return domain.CandidateViews(candidates, language), nil
}

func (s *Service) catalogNeighbours(ctx context.Context, id string, limit int) ([]domain.Candidate, error) {
	target, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	if target == nil {
		return []domain.Candidate{}, nil
	}

	products, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all products: %w", err)
	}

	return SimilarByCatalog(*target, products, limit), nil
}

func (s *Service) localStage(profile domain.PreferenceProfile, limit int) stage {
	return stage{name: sourceLocal, run: func(ctx context.Context) ([]domain.Candidate, error) {
		products, err := s.catalog.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("find all products: %w", err)
		}
		return Rank(profile, products, limit)
	}}
}

// resolve maps remote entries onto catalog products. Remote order is kept,
// unknown ids are dropped and scores pass through.
func (s *Service) resolve(ctx context.Context, recs []domain.RemoteRecommendation, limit int) ([]domain.Candidate, error) {
	if len(recs) == 0 {
		return []domain.Candidate{}, nil
	}

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ProductID)
	}

	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve remote ids: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]domain.Candidate, 0, len(recs))
	for _, r := range recs {
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		out = append(out, domain.Candidate{Product: p, Score: r.Score})
	}

	return truncate(out, limit), nil
}

func clampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, ceiling)
}
