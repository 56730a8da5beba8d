package directory

import "context"

type contextKey string

const ctxKeySession contextKey = "directory_session"

// ContextWithSession attaches the visitor session to ctx.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

// SessionFromContext returns the session attached to ctx, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(*Session)
	return sess, ok
}
