package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookieAge  = 7 * 24 * time.Hour
)

// CookiePolicy renders the refresh token cookie. In development the cookie is
// sent without the Secure flag and with SameSite=None so browser clients on
// another origin can use it; in production it is Secure with SameSite=Lax.
type CookiePolicy struct {
	Domain string
	Dev    bool
}

// SetRefresh attaches the refresh token to the response as an httpOnly cookie.
func (p CookiePolicy) SetRefresh(c echo.Context, token string) {
	c.SetCookie(p.cookie(token, time.Now().Add(refreshCookieAge)))
}

// ClearRefresh expires the refresh cookie. Logout is nothing more than this;
// issued tokens stay valid until they expire on their own.
func (p CookiePolicy) ClearRefresh(c echo.Context) {
	c.SetCookie(p.cookie("", time.Unix(0, 0)))
}

func (p CookiePolicy) cookie(value string, expires time.Time) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if p.Dev {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		Domain:   p.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   !p.Dev,
		SameSite: sameSite,
	}
}
