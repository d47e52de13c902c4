package middleware

import (
	"context"
	"net/http"

	"timeoff/internal/identity"
	"timeoff/internal/transport/http/api"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// Sessions resolves the session cookie into an identity on the request
// context. Requests without a valid session pass through anonymously; the
// guards below decide whether that is acceptable.
func Sessions(store *identity.SessionStore, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			ident, ok := store.Get(cookie.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyIdentity, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(ctxKeyIdentity).(identity.Identity)
	return ident, ok
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireManager(next http.Handler) http.Handler {
	return requireRole(next, identity.RoleManager)
}

func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, identity.RoleAdmin)
}

func RequireManagerOrAdmin(next http.Handler) http.Handler {
	return requireRole(next, identity.RoleManager, identity.RoleAdmin)
}

func requireRole(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := GetIdentity(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", GetRequestID(r.Context()))
			return
		}
		for _, role := range roles {
			if ident.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "insufficient role", GetRequestID(r.Context()))
	})
}
