package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/models"
	"github.com/GregMSThompson/steps-backend/internal/stats"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

// Fetch outcomes reported to stepsMetrics.
const (
	OutcomeOK               = "ok"
	OutcomeTokenUnavailable = "token_unavailable"
	OutcomeUpstreamStatus   = "upstream_status"
	OutcomeUpstreamParse    = "upstream_parse"
	OutcomeError            = "error"
)

type fitnessClient interface {
	FetchRange(ctx context.Context, token string, start, end time.Time) ([]models.DailySteps, error)
}

type stepsTokens interface {
	Token(ctx context.Context, uid, sessionID string) (string, error)
	EndSession(ctx context.Context, uid, sessionID string) error
}

type stepsGoals interface {
	DailyGoal(ctx context.Context, uid string) int64
}

type stepsMetrics interface {
	ObserveFetch(shape, outcome string)
}

type stepsService struct {
	fit      fitnessClient
	tokens   stepsTokens
	goals    stepsGoals
	metrics  stepsMetrics
	location *time.Location
	clockNow func() time.Time
}

func NewStepsService(fit fitnessClient, tokens stepsTokens, goals stepsGoals, metrics stepsMetrics, loc *time.Location) *stepsService {
	if loc == nil {
		loc = time.Local
	}
	return &stepsService{
		fit:      fit,
		tokens:   tokens,
		goals:    goals,
		metrics:  metrics,
		location: loc,
		clockNow: time.Now,
	}
}

// FetchToday returns today's total steps.
func (s *stepsService) FetchToday(ctx context.Context, uid, sessionID string) (int64, error) {
	return s.fetchToday(ctx, uid, sessionID, s.clockNow())
}

// FetchMonth returns one entry per day of the current month.
func (s *stepsService) FetchMonth(ctx context.Context, uid, sessionID string) ([]models.DailySteps, error) {
	return s.fetchMonth(ctx, uid, sessionID, s.clockNow())
}

func (s *stepsService) fetchToday(ctx context.Context, uid, sessionID string, now time.Time) (int64, error) {
	start, end := stats.DayBounds(now, s.location)
	days, err := s.fetch(ctx, uid, sessionID, "today", start, end)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, d := range days {
		total += d.Steps
	}
	return total, nil
}

func (s *stepsService) fetchMonth(ctx context.Context, uid, sessionID string, now time.Time) ([]models.DailySteps, error) {
	start, end := stats.MonthBounds(now, s.location)
	days, err := s.fetch(ctx, uid, sessionID, "month", start, end)
	if err != nil {
		return nil, err
	}
	return stats.FillMonth(days, now, s.location), nil
}

// GetToday reads the clock once so the fetched day and the label agree.
func (s *stepsService) GetToday(ctx context.Context, uid, sessionID string) (dto.TodayProgress, error) {
	now := s.clockNow()

	var steps, goal int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		steps, err = s.fetchToday(gctx, uid, sessionID, now)
		return err
	})
	g.Go(func() error {
		goal = s.goals.DailyGoal(gctx, uid)
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.TodayProgress{}, err
	}
	return stats.Today(stats.Label(now, s.location), steps, goal), nil
}

// GetCumulative fetches the month and the goal concurrently, then derives the
// chart from that snapshot.
func (s *stepsService) GetCumulative(ctx context.Context, uid, sessionID string) (dto.CumulativeProgress, error) {
	now := s.clockNow()
	series, goal, err := s.monthWithGoal(ctx, uid, sessionID, now)
	if err != nil {
		return dto.CumulativeProgress{}, err
	}
	return stats.Cumulative(series, goal, stats.Label(now, s.location)), nil
}

func (s *stepsService) GetSummary(ctx context.Context, uid, sessionID string) (dto.MonthlySummary, error) {
	series, goal, err := s.monthWithGoal(ctx, uid, sessionID, s.clockNow())
	if err != nil {
		return dto.MonthlySummary{}, err
	}
	return stats.Summary(series, goal), nil
}

func (s *stepsService) monthWithGoal(ctx context.Context, uid, sessionID string, now time.Time) ([]models.DailySteps, int64, error) {
	var series []models.DailySteps
	var goal int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = s.fetchMonth(gctx, uid, sessionID, now)
		return err
	})
	g.Go(func() error {
		goal = s.goals.DailyGoal(gctx, uid)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return series, goal, nil
}

func (s *stepsService) fetch(ctx context.Context, uid, sessionID, shape string, start, end time.Time) ([]models.DailySteps, error) {
	log := logger.FromContext(ctx)

	token, err := s.tokens.Token(ctx, uid, sessionID)
	if err != nil {
		s.observe(shape, err)
		return nil, err
	}

	days, err := s.fit.FetchRange(ctx, token, start, end)
	if err != nil {
		var upErr *errs.UpstreamError
		if errors.As(err, &upErr) && upErr.Status == http.StatusUnauthorized {
			// Google revoked or expired the token early
			if clearErr := s.tokens.EndSession(ctx, uid, sessionID); clearErr != nil {
				log.Warn("failed to clear rejected google fit token", "error", clearErr)
			}
			err = errs.NewTokenUnavailableError()
		}
		s.observe(shape, err)
		log.Warn("google fit fetch failed", "shape", shape, "error", err)
		return nil, err
	}

	s.observe(shape, nil)
	if logger.IsDebugEnabled(ctx) {
		var total int64
		for _, d := range days {
			total += d.Steps
		}
		log.Debug("google fit fetch succeeded", "shape", shape, "buckets", len(days), "steps", total)
	}
	return days, nil
}

func (s *stepsService) observe(shape string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveFetch(shape, fetchOutcome(err))
}

func fetchOutcome(err error) string {
	var tokErr *errs.TokenUnavailableError
	var upErr *errs.UpstreamError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &tokErr):
		return OutcomeTokenUnavailable
	case errors.As(err, &upErr) && upErr.ParseFailure:
		return OutcomeUpstreamParse
	case errors.As(err, &upErr):
		return OutcomeUpstreamStatus
	default:
		return OutcomeError
	}
}
