package models

import "time"

// StepGoal is the per-user daily step goal, stored at stepGoals/{uid}.
type StepGoal struct {
	UserID        string    `firestore:"-" json:"userId"`
	DailyStepGoal int64     `firestore:"dailyStepGoal" json:"dailyStepGoal"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}
