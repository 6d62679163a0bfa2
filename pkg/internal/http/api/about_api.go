package api

import (
	pkg "git.solsynth.dev/hypernet/yatube/pkg/internal"
	"github.com/gofiber/fiber/v2"
)

func getAboutAuthor(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":   "About the author",
		"content": "Yatube is written and maintained by the Hypernet team.",
	})
}

func getAboutTech(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":   "Technologies",
		"version": pkg.AppVersion,
		"stack":   []string{"Go", "Fiber", "GORM", "PostgreSQL", "Ristretto"},
	})
}
