package mw

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/litemark/litemark/internal/logger"
)

// RequireToken gates a route behind a static bearer token. An empty token
// disables the check entirely, which is only sensible on a private network;
// the caller logs a warning for that case at startup.
func RequireToken(token string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			got, isBearer := strings.CutPrefix(header, "Bearer ")
			if !isBearer || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn("rejected request with invalid token",
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", r.RemoteAddr))
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
