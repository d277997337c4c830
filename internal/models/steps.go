package models

// DailySteps is the step total for one calendar day. Date is the "MM/DD"
// label of the day in the configured location.
type DailySteps struct {
	Date  string `json:"date"`
	Steps int64  `json:"steps"`
}
