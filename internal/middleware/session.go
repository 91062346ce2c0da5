package middleware

import (
	"net/http"

	"github.com/delicioso/admin-gateway/internal/config"
	"github.com/delicioso/admin-gateway/internal/session"
)

// Sessions attaches a session to every request. An unknown or missing cookie
// gets a fresh session and a new cookie; the session carries only working
// state (cart, order form), it is not an authentication boundary.
func Sessions(store *session.Store, cfg config.SessionConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session

			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				sess, _ = store.Get(cookie.Value)
			}

			if sess == nil {
				sess = store.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sess.ID,
					Path:     "/",
					MaxAge:   cfg.TTLMinutes * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}
