package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/models"
)

type goalStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{
		Client:     client,
		Collection: client.Collection("stepGoals"),
	}
}

func (s *goalStore) Get(ctx context.Context, uid string) (*models.StepGoal, error) {
	doc, err := s.Collection.Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("step goal not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get step goal", err)
	}

	var goal models.StepGoal
	if err := doc.DataTo(&goal); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse step goal", err)
	}
	goal.UserID = uid
	return &goal, nil
}

// Create fails with AlreadyExistsError when the user already has a goal.
func (s *goalStore) Create(ctx context.Context, goal *models.StepGoal) error {
	_, err := s.Collection.Doc(goal.UserID).Create(ctx, goal)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("step goal already exists")
		}
		return errs.NewDatabaseError("create", "failed to create step goal", err)
	}
	return nil
}

// Update changes the goal value in place and leaves createdAt untouched.
func (s *goalStore) Update(ctx context.Context, uid string, dailyStepGoal int64, updatedAt time.Time) error {
	_, err := s.Collection.Doc(uid).Update(ctx, []firestore.Update{
		{Path: "dailyStepGoal", Value: dailyStepGoal},
		{Path: "updatedAt", Value: updatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("step goal not found")
		}
		return errs.NewDatabaseError("update", "failed to update step goal", err)
	}
	return nil
}
