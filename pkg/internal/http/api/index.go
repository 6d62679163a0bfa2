package api

import (
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

const defaultIndexCacheTTL = 20 * time.Second

func MapAPIs(app *fiber.App, baseURL string) {
	router := app.Group(baseURL)
	{
		router.Get("/", exts.CachePage(indexCacheTTL()), listIndex)
		router.Get("/group/:slug", listGroupPost)

		router.Get("/create", renderPostCreator)
		router.Post("/create", createPost)

		posts := router.Group("/posts/:postId")
		{
			posts.Get("/", getPost)
			posts.Get("/edit", renderPostEditor)
			posts.Post("/edit", editPost)
			posts.Get("/comment", createComment)
			posts.Post("/comment", createComment)
		}

		router.Get("/follow", listFollowFeed)

		profiles := router.Group("/profile/:name")
		{
			profiles.Get("/", getProfile)
			profiles.Get("/follow", followProfile)
			profiles.Post("/follow", followProfile)
			profiles.Get("/unfollow", unfollowProfile)
			profiles.Post("/unfollow", unfollowProfile)
		}

		auth := router.Group("/auth")
		{
			auth.Get("/signup", renderSignup)
			auth.Post("/signup", signup)
			auth.Get("/login", renderLogin)
			auth.Post("/login", login)
			auth.Get("/logout", logout)
			auth.Post("/logout", logout)
		}

		about := router.Group("/about")
		{
			about.Get("/author", getAboutAuthor)
			about.Get("/tech", getAboutTech)
		}
	}
}

func indexCacheTTL() time.Duration {
	if ttl := viper.GetDuration("cache.index_ttl"); ttl > 0 {
		return ttl
	}
	return defaultIndexCacheTTL
}
