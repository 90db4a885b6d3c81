package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paceline/paceline/internal/cache"
	"github.com/paceline/paceline/internal/telemetry/metrics"
	"github.com/paceline/paceline/internal/telemetry/tracing"
	"github.com/paceline/paceline/internal/training/activity"
	"github.com/paceline/paceline/internal/training/baseline"
	"github.com/paceline/paceline/internal/training/recovery"
	"github.com/paceline/paceline/internal/training/signals"
	"github.com/paceline/paceline/internal/training/splits"
	"github.com/paceline/paceline/internal/training/vma"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=insights

type historyRepo interface {
	Get(ctx context.Context, id int) (*activity.Activity, error)
	ListAll(ctx context.Context, params activity.ActivityParams) ([]activity.Activity, error)
	GetGoal(ctx context.Context, userID string) (*activity.Goal, error)
}

// Digest is the dashboard-style aggregate of all coaching signals,
// the most expensive computation of the service and the only cached
// one. Entries are immutable once written and replaced wholesale on
// expiry.
type Digest struct {
	Language    string               `json:"language"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Recovery    recovery.Score       `json:"recovery"`
	VMA         vma.Estimate         `json:"vma"`
	Week        signals.WeekSignals  `json:"week"`
	Month       signals.MonthSignals `json:"month"`
}

type Service struct {
	repo               historyRepo
	cache              cache.Cache
	ttl                time.Duration
	baselineWindowDays int
	metrics            *metrics.Manager

	// injectable clock for deterministic tests
	Now func() time.Time
}

func NewService(
	repo historyRepo,
	digestCache cache.Cache,
	cacheTTL time.Duration,
	baselineWindowDays int,
	metricsManager *metrics.Manager,
) *Service {
	if baselineWindowDays <= 0 {
		baselineWindowDays = baseline.DefaultWindowDays
	}
	return &Service{
		repo:               repo,
		cache:              digestCache,
		ttl:                cacheTTL,
		baselineWindowDays: baselineWindowDays,
		metrics:            metricsManager,
		Now:                time.Now,
	}
}

// Recovery scores current readiness from the last 14 days of sessions.
func (s *Service) Recovery(ctx context.Context, userID string) (_ recovery.Score, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.recovery")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.Now()
	history, err := s.history(ctx, userID, 14)
	if err != nil {
		return recovery.Score{}, err
	}

	return recovery.Compute(history, now), nil
}

// Baseline compares one activity against its trailing window. A nil
// comparison with a nil error means there is no baseline, which is a
// valid state of its own.
func (s *Service) Baseline(ctx context.Context, activityID, windowDays int) (_ *baseline.Comparison, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.baseline")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	subject, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}

	if windowDays <= 0 {
		windowDays = s.baselineWindowDays
	}
	from := subject.Date.AddDate(0, 0, -windowDays)
	history, err := s.repo.ListAll(ctx, activity.ActivityParams{
		UserID: subject.UserID,
		From:   &from,
	})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return baseline.Compare(history, *subject, windowDays), nil
}

// Splits analyzes the per-km or per-lap consistency of one activity.
// A nil analysis means the split data is absent or inconsistent with
// the recorded distance.
func (s *Service) Splits(ctx context.Context, activityID int) (_ *splits.Analysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.splits")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	subject, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}

	return splits.ForActivity(*subject), nil
}

// VMA estimates aerobic capacity, preferring the user's race goal over
// training-data inference.
func (s *Service) VMA(ctx context.Context, userID string) (_ vma.Estimate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.vma")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.repo.GetGoal(ctx, userID)
	if err != nil && !errors.Is(err, activity.ErrGoalNotFound) {
		return vma.Estimate{}, fmt.Errorf("get goal: %w", err)
	}

	history, err := s.history(ctx, userID, 90)
	if err != nil {
		return vma.Estimate{}, err
	}

	return vma.Compute(history, goal), nil
}

func (s *Service) WeekSignals(ctx context.Context, userID string) (_ signals.WeekSignals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.signals.week")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := s.history(ctx, userID, 7)
	if err != nil {
		return signals.WeekSignals{}, err
	}
	return signals.Week(history, s.Now()), nil
}

func (s *Service) MonthSignals(ctx context.Context, userID string) (_ signals.MonthSignals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.signals.month")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := s.history(ctx, userID, 60)
	if err != nil {
		return signals.MonthSignals{}, err
	}
	return signals.Month(history, s.Now()), nil
}

// Dashboard computes the full digest for a user and language, served
// from the TTL cache when a fresh entry exists.
func (s *Service) Dashboard(ctx context.Context, userID, lang string) (_ *Digest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insights.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if lang == "" {
		lang = "en"
	}

	cacheKey := fmt.Sprintf("insights::%s::%s", userID, lang)
	if cached, ok := s.cache.Get(cacheKey); ok {
		var digest Digest
		if err := json.Unmarshal(cached, &digest); err == nil {
			s.metrics.CounterInsightsCacheHits.Inc()
			return &digest, nil
		}
		// a corrupt entry counts as a miss and gets recomputed
	}
	s.metrics.CounterInsightsCacheMisses.Inc()

	computeStart := time.Now()

	history, err := s.history(ctx, userID, 90)
	if err != nil {
		return nil, err
	}
	goal, err := s.repo.GetGoal(ctx, userID)
	if err != nil && !errors.Is(err, activity.ErrGoalNotFound) {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	now := s.Now()
	digest := &Digest{
		Language:    lang,
		GeneratedAt: now,
		Recovery:    recovery.Compute(history, now),
		VMA:         vma.Compute(history, goal),
		Week:        signals.Week(history, now),
		Month:       signals.Month(history, now),
	}

	s.metrics.CounterInsightsComputed.Inc()
	s.metrics.HistInsightsComputeDuration.Observe(time.Since(computeStart).Seconds())

	digestJson, err := json.Marshal(digest)
	if err != nil {
		return nil, fmt.Errorf("marshal digest: %w", err)
	}
	s.cache.Set(cacheKey, digestJson, s.ttl)

	return digest, nil
}

func (s *Service) history(ctx context.Context, userID string, days int) ([]activity.Activity, error) {
	from := s.Now().AddDate(0, 0, -days)
	history, err := s.repo.ListAll(ctx, activity.ActivityParams{
		UserID: userID,
		From:   &from,
	})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return history, nil
}
