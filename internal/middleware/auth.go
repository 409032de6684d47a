package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"website-editor/internal/auth"
	"website-editor/internal/httputil"
)

// Auth resolves the caller's identity from an optional bearer token.
//
// A request without Authorization proceeds anonymously, or as devUserID when
// one is configured. A request with an Authorization header must carry a
// valid token; anything else is answered with 401. verifier may be nil, in
// which case every presented token is rejected.
func Auth(verifier auth.JWTVerifier, devUserID string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if devUserID != "" {
					r = httputil.WithUserID(r, devUserID)
				}
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "only Bearer tokens are accepted")
				return
			}

			if verifier == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "token verification is not configured")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("authentication failed", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
