package exts

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		} else if _, ok := err.(*RedirectError); ok {
			status = fiber.StatusFound
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	log.Debug().
		Str("method", c.Method()).
		Str("path", c.OriginalURL()).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("Handled request.")
	return err
}
