package dto

type SaveGoalRequest struct {
	DailyStepGoal string `json:"dailyStepGoal"`
}

// GoalInputCheck tells the goal dialog whether its save button is enabled.
type GoalInputCheck struct {
	Input         string `json:"input"`
	CanSave       bool   `json:"canSave"`
	DailyStepGoal *int64 `json:"dailyStepGoal,omitempty"`
	Reason        string `json:"reason,omitempty"`
}
