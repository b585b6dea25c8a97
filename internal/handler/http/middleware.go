package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/service"
)

type contextKey string

const (
	authPayloadKey contextKey = "auth_payload"
)

const authCookieName = "auth_token"

// AuthMiddleware gets the token from the cookie or bearer header and passes its payload to the context
func AuthMiddleware(ts service.TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				cookie, err := r.Cookie(authCookieName)
				if err != nil {
					writeError(w, http.StatusUnauthorized, errKindUnauthorized, "authorization token is missing")
					return
				}
				token = cookie.Value
			}

			payload, err := ts.VerifyToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), authPayloadKey, payload)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly rejects requests of non admin users
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
			return
		}
		if !payload.IsAdmin {
			writeError(w, http.StatusForbidden, errKindForbidden, models.ErrForbidden.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// getAuthPayload extracts authorization token payload from context
func getAuthPayload(ctx context.Context, key contextKey) (*models.TokenPayload, bool) {
	payload, ok := ctx.Value(key).(*models.TokenPayload)
	return payload, ok && payload != nil
}
