package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	AuthClient idTokenVerifier
}

func NewMiddleware(client idTokenVerifier) *Middleware {
	return &Middleware{AuthClient: client}
}

// context key
type contextKey string

const (
	UIDKey        contextKey = "uid"
	FitSessionKey contextKey = "fitSession"
)

// FitSessionHeader carries the id returned by POST /fit/session.
const FitSessionHeader = "X-Fit-Session"

// FirebaseAuth verifies the Firebase ID token and stores the uid in the context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		tokenStr := parts[1]

		// Verify ID Token
		token, err := m.AuthClient.VerifyIDToken(r.Context(), tokenStr)
		if err != nil {
			logger.FromContext(r.Context()).Warn("id token rejected", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Add UID to context and to the request logger
		_, ctx := logger.With(r.Context(), "uid", token.UID)
		ctx = context.WithValue(ctx, UIDKey, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FitSession copies the X-Fit-Session header into the context. A missing
// header is left for the steps service to report as a token problem.
func FitSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(FitSessionHeader))
		ctx := context.WithValue(r.Context(), FitSessionKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

func FitSessionID(ctx context.Context) string {
	id, _ := ctx.Value(FitSessionKey).(string)
	return id
}
