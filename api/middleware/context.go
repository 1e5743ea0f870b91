package middleware

import (
	"context"

	"github.com/senurad/procuretrack-backend/pkg/auth"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
)

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the authenticated session seeded by Auth.
func SessionFromContext(ctx context.Context) (auth.Session, error) {
	if ctx == nil {
		return auth.Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if sess, ok := ctx.Value(ctxSession).(auth.Session); ok {
		return sess, nil
	}
	return auth.Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
}

// WithSession injects the session into the context.
func WithSession(ctx context.Context, sess auth.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}
