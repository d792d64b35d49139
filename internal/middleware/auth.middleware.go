package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/jwtutil"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
)

type ctxKey string

const (
	ctxUserID ctxKey = "user_id"
	ctxEmail  ctxKey = "email"
	ctxRole   ctxKey = "role"
	ctxToken  ctxKey = "auth_token"
)

// SessionChecker answers whether a signed token still maps to a live session
// and records activity. Satisfied by usecase.SessionUsecase.
type SessionChecker interface {
	Exists(ctx context.Context, token string) error
	Touch(ctx context.Context, token string) error
}

// ActivityRecorder stamps per-user activity. Satisfied by usecase.UserUsecase.
type ActivityRecorder interface {
	RecordVisit(ctx context.Context, userID, path string)
}

type AuthMiddleware struct {
	verifier *jwtutil.Verifier
	sessions SessionChecker
	activity ActivityRecorder
}

func NewAuthMiddleware(verifier *jwtutil.Verifier, sessions SessionChecker, activity ActivityRecorder) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, sessions: sessions, activity: activity}
}

// Require verifies the bearer token signature, checks the session is still
// live (logout revokes tokens before they expire), and stamps activity.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := m.verifier.ParseAndValidate(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if err := m.sessions.Exists(r.Context(), token); err != nil {
			response.Error(w, http.StatusUnauthorized, "session revoked")
			return
		}

		// Advisory stamps; never block the request on them.
		go func(userID, path, tok string) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			m.activity.RecordVisit(ctx, userID, path)
			_ = m.sessions.Touch(ctx, tok)
		}(claims.UserID, r.URL.Path, token)

		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxEmail, claims.Email)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		ctx = context.WithValue(ctx, ctxToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a subtree to the listed roles. Must run inside Require.
func (m *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(ctxRole).(string)
			if _, ok := allowed[role]; !ok {
				response.Error(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// UserID returns the authenticated user id stored by Require.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(ctxUserID).(string)
	return v
}

func Email(ctx context.Context) string {
	v, _ := ctx.Value(ctxEmail).(string)
	return v
}

func Role(ctx context.Context) string {
	v, _ := ctx.Value(ctxRole).(string)
	return v
}

func Token(ctx context.Context) string {
	v, _ := ctx.Value(ctxToken).(string)
	return v
}
