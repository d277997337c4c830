package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/models"
)

func TestGoalStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	store := NewGoalStore(client)
	uid := "goal-user-" + time.Now().Format("150405.000000")

	_, err = store.Get(ctx, uid)
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError before create, got %v", err)
	}

	created := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	goal := &models.StepGoal{UserID: uid, DailyStepGoal: 5000, CreatedAt: created, UpdatedAt: created}
	if err := store.Create(ctx, goal); err != nil {
		t.Fatalf("create error: %v", err)
	}

	var exists *errs.AlreadyExistsError
	if err := store.Create(ctx, goal); !errors.As(err, &exists) {
		t.Fatalf("second create should fail with AlreadyExistsError, got %v", err)
	}

	updated := created.Add(24 * time.Hour)
	if err := store.Update(ctx, uid, 8000, updated); err != nil {
		t.Fatalf("update error: %v", err)
	}

	got, err := store.Get(ctx, uid)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.UserID != uid || got.DailyStepGoal != 8000 {
		t.Fatalf("unexpected goal: %+v", got)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(updated) {
		t.Fatalf("timestamps wrong: created %v updated %v", got.CreatedAt, got.UpdatedAt)
	}

	if err := store.Update(ctx, uid+"-missing", 1, updated); !errors.As(err, &nf) {
		t.Fatalf("update of missing goal should be NotFoundError, got %v", err)
	}
}
