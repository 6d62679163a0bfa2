package exts

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/spf13/viper"
)

const (
	CSRFCookieName = "yatube_csrf"
	CSRFFormField  = "csrf_token"
	csrfContextKey = "csrf"
)

// NewCSRF guards every unsafe request with a double submitted token. Forms
// carry it in the csrf_token field, matching the yatube_csrf cookie.
func NewCSRF() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFFormField,
		CookieName:     CSRFCookieName,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   viper.GetBool("security.cookie_secure"),
		CookieHTTPOnly: true,
		Expiration:     12 * time.Hour,
		ContextKey:     csrfContextKey,
	})
}

// CSRFToken is the token forms rendered for this request must submit.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(csrfContextKey).(string)
	return token
}
