package auth

import (
	"net/http"
	"time"
)

// CookieWriter emits and clears the credential cookie. SameSite policy
// follows the deployment environment: cross-site clients in production need
// None+Secure, local development uses Lax over plain HTTP.
type CookieWriter struct {
	Name   string
	Secure bool
}

func (c CookieWriter) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// Write sets the credential cookie for the validity window.
func (c CookieWriter) Write(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

// Clear expires the credential cookie.
func (c CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}
