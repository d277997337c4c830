package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/models"
	"github.com/GregMSThompson/steps-backend/internal/stats"
	"github.com/GregMSThompson/steps-backend/pkg/helpers"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

type goalStore interface {
	Get(ctx context.Context, uid string) (*models.StepGoal, error)
	Create(ctx context.Context, goal *models.StepGoal) error
	Update(ctx context.Context, uid string, dailyStepGoal int64, updatedAt time.Time) error
}

type goalService struct {
	store       goalStore
	defaultGoal int64
	clockNow    func() time.Time
}

func NewGoalService(store goalStore, defaultGoal int64) *goalService {
	if defaultGoal <= 0 {
		defaultGoal = stats.DefaultDailyGoal
	}
	return &goalService{
		store:       store,
		defaultGoal: defaultGoal,
		clockNow:    time.Now,
	}
}

// ParseGoalInput accepts a base-10 positive integer, ignoring surrounding
// whitespace.
func ParseGoalInput(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, errs.NewValidationError("daily step goal is required")
	}
	goal, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, errs.NewValidationError("daily step goal must be a whole number")
	}
	if goal <= 0 {
		return 0, errs.NewValidationError("daily step goal must be greater than zero")
	}
	return goal, nil
}

// CheckInput reports whether input may be saved without touching storage.
func (s *goalService) CheckInput(input string) dto.GoalInputCheck {
	check := dto.GoalInputCheck{Input: input}
	goal, err := ParseGoalInput(input)
	if err != nil {
		check.Reason = err.Error()
		return check
	}
	check.CanSave = true
	check.DailyStepGoal = helpers.Ptr(goal)
	return check
}

// GetGoal returns the saved goal, or the default goal with zero timestamps
// when the user has not saved one.
func (s *goalService) GetGoal(ctx context.Context, uid string) (*models.StepGoal, error) {
	goal, err := s.store.Get(ctx, uid)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return &models.StepGoal{UserID: uid, DailyStepGoal: s.defaultGoal}, nil
		}
		return nil, err
	}
	return goal, nil
}

// DailyGoal is the goal used by the step views. Read failures are logged and
// fall back to the default so step display is never blocked by Firestore.
func (s *goalService) DailyGoal(ctx context.Context, uid string) int64 {
	goal, err := s.GetGoal(ctx, uid)
	if err != nil {
		logger.FromContext(ctx).Warn("falling back to default step goal", "error", err, "default", s.defaultGoal)
		return s.defaultGoal
	}
	if goal.DailyStepGoal <= 0 {
		return s.defaultGoal
	}
	return goal.DailyStepGoal
}

// SaveGoal validates input and upserts the user's single goal record.
func (s *goalService) SaveGoal(ctx context.Context, uid, input string) (*models.StepGoal, error) {
	log := logger.FromContext(ctx)

	value, err := ParseGoalInput(input)
	if err != nil {
		return nil, err
	}

	now := s.clockNow()
	existing, err := s.store.Get(ctx, uid)
	var nf *errs.NotFoundError
	switch {
	case errors.As(err, &nf):
		goal := &models.StepGoal{UserID: uid, DailyStepGoal: value, CreatedAt: now, UpdatedAt: now}
		err = s.store.Create(ctx, goal)
		if err == nil {
			log.Info("step goal created", "daily_step_goal", value)
			return goal, nil
		}
		var exists *errs.AlreadyExistsError
		if !errors.As(err, &exists) {
			return nil, err
		}
		// lost a race with a concurrent first save
		existing, err = s.store.Get(ctx, uid)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if err := s.store.Update(ctx, uid, value, now); err != nil {
		return nil, err
	}
	existing.DailyStepGoal = value
	existing.UpdatedAt = now
	log.Info("step goal updated", "daily_step_goal", value)
	return existing, nil
}
