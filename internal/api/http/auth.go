package http

import (
	"net/http"
	"time"

	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/security"
)

// CookiePolicy describes how the token cookie is issued and cleared.
// Production serves a cross-site client, so the cookie must be Secure with
// SameSite=None there.
type CookiePolicy struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

func NewCookiePolicy(name string, production bool, maxAge time.Duration) CookiePolicy {
	p := CookiePolicy{Name: name, MaxAge: maxAge, SameSite: http.SameSiteStrictMode}
	if production {
		p.Secure = true
		p.SameSite = http.SameSiteNoneMode
	}
	return p
}

func (p CookiePolicy) Issue(token string) *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(p.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

func (p CookiePolicy) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

// AuthMiddleware rejects requests without a valid token cookie
type AuthMiddleware struct {
	tokenManager security.TokenManager
	cookieName   string
}

func NewAuthMiddleware(tm security.TokenManager, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, cookieName: cookieName}
}

// RequireToken verifies the cookie and puts the caller identity in the
// request context. Failures answer 401 before the handler runs.
func (a *AuthMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(a.cookieName)
		if err != nil || cookie.Value == "" {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		claims, err := a.tokenManager.ValidateToken(cookie.Value)
		if err != nil {
			logger.WarnContext(r.Context(), "Token rejected", "error", err, "path", r.URL.Path)
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := WithIdentity(r.Context(), claims.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
