package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/models"
	"github.com/GregMSThompson/steps-backend/pkg/helpers"
)

// --- Fakes ---

type fakeGoalStore struct {
	goals       map[string]*models.StepGoal
	getErr      error
	createErr   error
	updateErr   error
	createCalls int
	updateCalls int
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: map[string]*models.StepGoal{}}
}

func (f *fakeGoalStore) Get(_ context.Context, uid string) (*models.StepGoal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	g, ok := f.goals[uid]
	if !ok {
		return nil, errs.NewNotFoundError("step goal not found")
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoalStore) Create(_ context.Context, goal *models.StepGoal) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.goals[goal.UserID]; ok {
		return errs.NewAlreadyExistsError("step goal already exists")
	}
	cp := *goal
	f.goals[goal.UserID] = &cp
	return nil
}

func (f *fakeGoalStore) Update(_ context.Context, uid string, value int64, updatedAt time.Time) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	g, ok := f.goals[uid]
	if !ok {
		return errs.NewNotFoundError("step goal not found")
	}
	g.DailyStepGoal = value
	g.UpdatedAt = updatedAt
	return nil
}

// --- Tests ---

func TestParseGoalInput(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"5000", 5000, true},
		{" 8000 ", 8000, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"12.5", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, c := range cases {
		got, err := ParseGoalInput(c.input)
		if c.ok {
			if err != nil || got != c.want {
				t.Fatalf("ParseGoalInput(%q) = %d, %v; want %d", c.input, got, err, c.want)
			}
			continue
		}
		var vErr *errs.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("ParseGoalInput(%q) error = %v, want ValidationError", c.input, err)
		}
	}
}

func TestCheckInput(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore(), 0)

	for _, in := range []string{"0", "-5", "abc"} {
		if check := svc.CheckInput(in); check.CanSave || check.DailyStepGoal != nil || check.Reason == "" {
			t.Fatalf("CheckInput(%q) = %+v, want save disabled", in, check)
		}
	}

	check := svc.CheckInput("5000")
	if !check.CanSave || check.DailyStepGoal == nil || *check.DailyStepGoal != 5000 {
		t.Fatalf("CheckInput(5000) = %+v", check)
	}
}

func TestSaveGoalCreatesThenUpdates(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewGoalService(store, 0)
	first := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc.clockNow = func() time.Time { return first }
	ctx := helpers.TestCtx()

	goal, err := svc.SaveGoal(ctx, "uid-1", "5000")
	if err != nil {
		t.Fatalf("SaveGoal error: %v", err)
	}
	if goal.DailyStepGoal != 5000 || !goal.CreatedAt.Equal(first) || !goal.UpdatedAt.Equal(first) {
		t.Fatalf("unexpected created goal: %+v", goal)
	}
	if store.createCalls != 1 || store.updateCalls != 0 {
		t.Fatalf("create=%d update=%d", store.createCalls, store.updateCalls)
	}

	second := first.Add(48 * time.Hour)
	svc.clockNow = func() time.Time { return second }
	goal, err = svc.SaveGoal(ctx, "uid-1", "7000")
	if err != nil {
		t.Fatalf("SaveGoal error: %v", err)
	}
	if store.createCalls != 1 || store.updateCalls != 1 {
		t.Fatalf("second save must update in place: create=%d update=%d", store.createCalls, store.updateCalls)
	}
	stored := store.goals["uid-1"]
	if stored.DailyStepGoal != 7000 || !stored.CreatedAt.Equal(first) || !stored.UpdatedAt.Equal(second) {
		t.Fatalf("unexpected stored goal: %+v", stored)
	}
	if goal.DailyStepGoal != 7000 || !goal.UpdatedAt.Equal(second) {
		t.Fatalf("unexpected returned goal: %+v", goal)
	}
}

func TestSaveGoalInvalidInputNeverReachesStore(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewGoalService(store, 0)

	for _, in := range []string{"0", "-5", "abc"} {
		_, err := svc.SaveGoal(helpers.TestCtx(), "uid-1", in)
		var vErr *errs.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("SaveGoal(%q) error = %v", in, err)
		}
	}
	if store.createCalls != 0 || store.updateCalls != 0 {
		t.Fatalf("store touched for invalid input")
	}
}

// createRaceStore reports AlreadyExists on Create as if another request won.
type createRaceStore struct {
	*fakeGoalStore
	winner *models.StepGoal
}

func (s *createRaceStore) Create(ctx context.Context, goal *models.StepGoal) error {
	s.goals[s.winner.UserID] = s.winner
	return s.fakeGoalStore.Create(ctx, goal)
}

func TestSaveGoalFallsBackToUpdateOnCreateRace(t *testing.T) {
	created := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := &createRaceStore{
		fakeGoalStore: newFakeGoalStore(),
		winner:        &models.StepGoal{UserID: "uid-1", DailyStepGoal: 4000, CreatedAt: created, UpdatedAt: created},
	}
	svc := NewGoalService(store, 0)

	goal, err := svc.SaveGoal(helpers.TestCtx(), "uid-1", "6000")
	if err != nil {
		t.Fatalf("SaveGoal error: %v", err)
	}
	if goal.DailyStepGoal != 6000 || !goal.CreatedAt.Equal(created) {
		t.Fatalf("unexpected goal: %+v", goal)
	}
	if store.updateCalls != 1 {
		t.Fatalf("expected an update after losing the create race")
	}
}

func TestSaveGoalPersistenceError(t *testing.T) {
	store := newFakeGoalStore()
	store.getErr = errs.NewDatabaseError("read", "failed to get step goal", errors.New("unavailable"))
	svc := NewGoalService(store, 0)

	_, err := svc.SaveGoal(helpers.TestCtx(), "uid-1", "5000")
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}

func TestGetGoalDefaultsWhenMissing(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore(), 0)

	goal, err := svc.GetGoal(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("GetGoal error: %v", err)
	}
	if goal.DailyStepGoal != 3000 || !goal.CreatedAt.IsZero() {
		t.Fatalf("unexpected default goal: %+v", goal)
	}
}

func TestDailyGoalFallsBackOnError(t *testing.T) {
	store := newFakeGoalStore()
	store.getErr = errs.NewDatabaseError("read", "failed to get step goal", errors.New("unavailable"))
	svc := NewGoalService(store, 4500)

	if got := svc.DailyGoal(helpers.TestCtx(), "uid-1"); got != 4500 {
		t.Fatalf("DailyGoal = %d, want configured default 4500", got)
	}

	store.getErr = nil
	store.goals["uid-1"] = &models.StepGoal{UserID: "uid-1", DailyStepGoal: 9000}
	if got := svc.DailyGoal(helpers.TestCtx(), "uid-1"); got != 9000 {
		t.Fatalf("DailyGoal = %d, want 9000", got)
	}
}
