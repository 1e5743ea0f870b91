package middleware

import (
	"net/http"
	"strings"

	"github.com/senurad/procuretrack-backend/api/responses"
	pkgauth "github.com/senurad/procuretrack-backend/pkg/auth"
	"github.com/senurad/procuretrack-backend/pkg/config"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	"github.com/senurad/procuretrack-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// session. The raw token is kept on the session so it can be forwarded to the
// procurement API.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.DepartmentID <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing department"))
				return
			}

			sess := pkgauth.Session{
				UserID:       claims.UserID,
				DepartmentID: claims.DepartmentID,
				FullName:     claims.FullName,
				Token:        token,
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithUserID(ctx, sess.UserID.String())
				ctx = logg.WithDepartmentID(ctx, sess.DepartmentID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
