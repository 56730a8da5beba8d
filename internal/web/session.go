package web

import (
	"net/http"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/google/uuid"
)

// sessionMiddleware attaches the visitor's session, issuing a cookie for
// new visitors.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(s.cfg.Session.TTL.Seconds()),
				HttpOnly: true,
				Secure:   s.cfg.Session.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess := s.sessions.Get(id)
		next.ServeHTTP(w, r.WithContext(directory.ContextWithSession(r.Context(), sess)))
	})
}

// session returns the request's session. Handlers outside the session
// group get a throwaway session.
func session(r *http.Request) *directory.Session {
	if sess, ok := directory.SessionFromContext(r.Context()); ok {
		return sess
	}
	return directory.NewSession("")
}
