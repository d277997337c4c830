package dto

import "time"

// FitSessionRequest registers the Google OAuth access token obtained at sign-in.
// ExpiresIn is the provider lifetime in seconds; zero means unknown.
type FitSessionRequest struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn,omitempty"`
}

type FitSession struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
