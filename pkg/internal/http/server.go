package http

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		UnescapePath:          true,
		ServerHeader:          "Hypernet.Yatube",
		AppName:               "Hypernet.Yatube",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             int(services.MaxImageSize()) + 1<<20,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		ErrorHandler:          exts.ErrorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(exts.RequestLogger)

	app.Use(exts.NewCSRF())

	exts.Sessions = exts.NewSessionStore()
	app.Use(exts.AuthMiddleware)

	if viper.GetBool("debug.enabled") {
		app.Static(services.MediaURL(), services.MediaRoot())
	}

	api.MapAPIs(app, "")

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "page was not found")
	})

	return &App{app}
}

// Handler exposes the underlying fiber app, mostly for in-process tests.
func (v *App) Handler() *fiber.App {
	return v.app
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.Shutdown()
}
