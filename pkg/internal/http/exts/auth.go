package exts

import (
	"fmt"
	"net/url"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	LoginURL          = "/auth/login/"
	sessionAccountKey = "account_id"
)

var Sessions *session.Store

func NewSessionStore() *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:yatube_session",
		CookieHTTPOnly: true,
		CookieSecure:   viper.GetBool("security.cookie_secure"),
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// AuthMiddleware resolves the session account into c.Locals("user").
func AuthMiddleware(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		log.Warn().Err(err).Msg("Unable to load session...")
		return c.Next()
	}

	if id, ok := sess.Get(sessionAccountKey).(uint); ok {
		if account, err := services.GetAccountWithID(id); err == nil {
			c.Locals("user", account)
		} else {
			_ = sess.Destroy()
		}
	}

	return c.Next()
}

func GetAccount(c *fiber.Ctx) (models.Account, bool) {
	user, ok := c.Locals("user").(models.Account)
	return user, ok
}

// EnsureAuthenticated sends guests to the login page, remembering
// where they were heading.
func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := GetAccount(c); !ok {
		return Redirect(fmt.Sprintf("%s?next=%s", LoginURL, url.QueryEscape(c.OriginalURL())))
	}
	return nil
}

func Login(c *fiber.Ctx, account models.Account) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionAccountKey, account.ID)
	c.Locals("user", account)
	return sess.Save()
}

func Logout(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	c.Locals("user", nil)
	return sess.Destroy()
}
