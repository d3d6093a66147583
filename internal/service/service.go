package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagekit/destination-recommender/internal/cache"
	"github.com/voyagekit/destination-recommender/internal/domain"
	"github.com/voyagekit/destination-recommender/internal/ingest"
	"github.com/voyagekit/destination-recommender/internal/model"
	"github.com/voyagekit/destination-recommender/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 50

	// Known users trust collaborative filtering more than any single
	// contextual source; cold-start requests weight every source equally.
	cfWeight     = 0.4
	sourceWeight = 0.2
)

type Service struct {
	repo         *repository.Repository
	cache        *cache.Cache
	holder       *model.Holder
	snapshotPath string
	logger       zerolog.Logger
}

func NewService(repo *repository.Repository, c *cache.Cache, holder *model.Holder, snapshotPath string, logger zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		cache:        c,
		holder:       holder,
		snapshotPath: snapshotPath,
		logger:       logger.With().Str("component", "service").Logger(),
	}
}

// NewUserRequest carries the inputs of a cold-start recommendation.
// Zero-value fields fall back to defaults (Summer, Regular Vacation, no
// origin source, default preferences, default limit).
type NewUserRequest struct {
	Preferences *domain.Preferences
	Season      domain.Season
	TripPurpose domain.TripPurpose
	Origin      string
	Limit       int
}

// RecommendForUser produces destination recommendations for a user known
// from booking history. Unknown users degrade to popularity inside the
// collaborative scorer rather than failing.
func (s *Service) RecommendForUser(ctx context.Context, userID int64, limit int) (*domain.RecommendationResult, error) {
	limit = clampLimit(limit)

	snap, err := s.holder.Snapshot()
	if err != nil {
		return nil, err
	}

	cached, found, err := s.cache.Get(ctx, userID, limit)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("cache get failed")
	}
	if found {
		return &domain.RecommendationResult{Recommendations: cached, CacheHit: true}, nil
	}

	recs := s.blendForUser(snap, userID, limit)

	if cacheErr := s.cache.Set(ctx, userID, limit, recs); cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Int64("user_id", userID).Msg("cache set failed")
	}

	return &domain.RecommendationResult{Recommendations: recs, CacheHit: false}, nil
}

func (s *Service) blendForUser(snap *model.Snapshot, userID int64, limit int) []domain.ScoredDestination {
	r := model.NewRecommenders(snap)

	// A user with no booking history gets the plain popularity ranking:
	// there is no signal to personalize the contextual sources with.
	if !snap.Matrix.HasUser(userID) {
		return snap.Blend([]model.RankedSource{
			{Name: "popularity", Weight: 1.0, Destinations: r.PopularityBased(limit)},
		}, limit)
	}

	season, purpose := userContext(snap, userID)
	pool := 2 * limit

	sources := []model.RankedSource{
		{Name: "collaborative", Weight: cfWeight, Destinations: s.safeList("collaborative", func() []string {
			return r.CollaborativeFiltering(userID, pool)
		})},
		{Name: "popularity", Weight: sourceWeight, Destinations: s.safeList("popularity", func() []string {
			return r.PopularityBased(pool)
		})},
		{Name: "seasonal", Weight: sourceWeight, Destinations: s.safeList("seasonal", func() []string {
			return r.Seasonal(season, pool)
		})},
		{Name: "trip_type", Weight: sourceWeight, Destinations: s.safeList("trip_type", func() []string {
			return r.TripType(purpose, pool)
		})},
	}
	return snap.Blend(sources, limit)
}

// RecommendForNewUser produces cold-start recommendations from stated
// preferences and context. Sources with no matching bookings contribute
// empty lists; popularity is always among the sources, so the result is
// non-empty for any trained model.
func (s *Service) RecommendForNewUser(ctx context.Context, req NewUserRequest) (*domain.RecommendationResult, error) {
	limit := clampLimit(req.Limit)

	snap, err := s.holder.Snapshot()
	if err != nil {
		return nil, err
	}

	prefs := domain.DefaultPreferences()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	season := req.Season
	if season == "" {
		season = domain.SeasonSummer
	}
	purpose := req.TripPurpose
	if purpose == "" {
		purpose = domain.TripRegularVacation
	}

	r := model.NewRecommenders(snap)
	pool := 2 * limit

	sources := []model.RankedSource{
		{Name: "popularity", Weight: sourceWeight, Destinations: s.safeList("popularity", func() []string {
			return r.PopularityBased(pool)
		})},
		{Name: "seasonal", Weight: sourceWeight, Destinations: s.safeList("seasonal", func() []string {
			return r.Seasonal(season, pool)
		})},
		{Name: "trip_type", Weight: sourceWeight, Destinations: s.safeList("trip_type", func() []string {
			return r.TripType(purpose, pool)
		})},
		{Name: "preference", Weight: sourceWeight, Destinations: s.safeList("preference", func() []string {
			return r.PreferenceBased(prefs, pool)
		})},
	}
	if req.Origin != "" {
		sources = append(sources, model.RankedSource{
			Name: "origin", Weight: sourceWeight, Destinations: s.safeList("origin", func() []string {
				return r.OriginBased(req.Origin, pool)
			}),
		})
	}

	recs := snap.Blend(sources, limit)
	return &domain.RecommendationResult{Recommendations: recs, CacheHit: false}, nil
}

// Retrain rebuilds the model from the booking store and publishes the new
// snapshot in a single atomic swap. In-flight requests keep reading the
// previous snapshot until the swap lands.
func (s *Service) Retrain(ctx context.Context) (*model.Snapshot, error) {
	start := time.Now()

	raws, err := s.repo.ListRawBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	records := ingest.Ingest(raws, s.logger)

	snap, err := model.Train(records)
	if err != nil {
		return nil, err
	}
	s.holder.Publish(snap)

	if saveErr := snap.Save(s.snapshotPath); saveErr != nil {
		// The new model is already live; losing the blob only costs a
		// retrain at next startup.
		s.logger.Error().Err(saveErr).Str("path", s.snapshotPath).Msg("snapshot persist failed")
	}
	if clearErr := s.cache.ClearAll(ctx); clearErr != nil {
		s.logger.Warn().Err(clearErr).Msg("cache invalidation failed after retrain")
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Int("records", len(records)).
		Int("destinations", len(snap.Stats)).
		Int("users", len(snap.Matrix.Users)).
		Msg("model trained")
	return snap, nil
}

// LoadOrTrain restores the persisted snapshot at startup, falling back to
// a full training run when no usable blob exists.
func (s *Service) LoadOrTrain(ctx context.Context) error {
	snap, err := model.LoadSnapshot(s.snapshotPath)
	if err == nil {
		s.holder.Publish(snap)
		s.logger.Info().
			Time("trained_at", snap.TrainedAt).
			Int("destinations", len(snap.Stats)).
			Msg("snapshot restored")
		return nil
	}
	s.logger.Warn().Err(err).Str("path", s.snapshotPath).Msg("no usable snapshot, training from booking store")
	_, err = s.Retrain(ctx)
	return err
}

// safeList shields the blend from a failing scorer: the failure is logged
// and the source contributes nothing.
func (s *Service) safeList(name string, fn func() []string) (dests []string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("source", name).Interface("panic", r).Msg("scorer failed, contributing no candidates")
			dests = nil
		}
	}()
	return fn()
}

// userContext infers the season and trip purpose to blend with for a known
// user: the most frequent value among their bookings, ties resolved
// lexically, defaults for users with no history.
func userContext(snap *model.Snapshot, userID int64) (domain.Season, domain.TripPurpose) {
	seasonCounts := make(map[string]int)
	purposeCounts := make(map[string]int)
	for _, rec := range snap.Records {
		if rec.UserID != userID {
			continue
		}
		seasonCounts[string(rec.Season)]++
		purposeCounts[string(rec.TripPurpose)]++
	}

	season := domain.Season(modeOf(seasonCounts, string(domain.SeasonSummer)))
	purpose := domain.TripPurpose(modeOf(purposeCounts, string(domain.TripRegularVacation)))
	return season, purpose
}

func modeOf(counts map[string]int, fallback string) string {
	if len(counts) == 0 {
		return fallback
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
