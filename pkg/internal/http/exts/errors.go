package exts

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return c.Redirect(redirect.Location, fiber.StatusFound)
	}

	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
