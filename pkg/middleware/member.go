package middleware

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// MemberIDKey is the context key for the acting member id
	MemberIDKey ContextKey = "member_id"
)

// ActingMember resolves the acting member for each request. There is no
// real authentication: the host supplies the identity via the X-Member-ID
// header, and requests without one act as the configured default member.
func ActingMember(defaultMemberID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberID := r.Header.Get("X-Member-ID")
			if memberID == "" {
				memberID = defaultMemberID
			}
			ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetMemberID extracts the acting member id from the request context
func GetMemberID(ctx context.Context) (string, bool) {
	memberID, ok := ctx.Value(MemberIDKey).(string)
	return memberID, ok && memberID != ""
}
