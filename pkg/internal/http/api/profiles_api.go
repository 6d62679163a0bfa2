package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func lookupProfile(c *fiber.Ctx) (models.Account, error) {
	author, err := services.GetAccountByName(c.Params("name"))
	if err != nil {
		return author, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return author, nil
}

func getProfile(c *fiber.Ctx) error {
	author, err := lookupProfile(c)
	if err != nil {
		return err
	}

	page, err := services.ListPostPage(services.FilterPostWithAuthor(database.C, author), c.Query("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	followers, err := services.CountFollowers(author)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	following, err := services.CountFollowing(author)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if user, ok := exts.GetAccount(c); ok {
		if isFollowing, err = services.IsFollowing(user, author); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"author":          author,
		"full_name":       author.FullName(),
		"page":            page,
		"following":       isFollowing,
		"followers_count": followers,
		"following_count": following,
	})
}

func followProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user, _ := exts.GetAccount(c)

	author, err := lookupProfile(c)
	if err != nil {
		return err
	}

	if _, err := services.FollowAccount(user, author); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.Redirect(profileURL(author.Name))
}

func unfollowProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user, _ := exts.GetAccount(c)

	author, err := lookupProfile(c)
	if err != nil {
		return err
	}

	if err := services.UnfollowAccount(user, author); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.Redirect(profileURL(author.Name))
}

func listFollowFeed(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user, _ := exts.GetAccount(c)

	page, err := services.GetFeed(user, c.Query("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}
