package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listIndex(c *fiber.Ctx) error {
	page, err := services.ListPostPage(database.C, c.Query("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}

func listGroupPost(c *fiber.Ctx) error {
	group, err := services.GetGroup(c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	page, err := services.ListPostPage(services.FilterPostWithGroup(database.C, group), c.Query("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"group": group,
		"page":  page,
	})
}

func getPost(c *fiber.Ctx) error {
	post, err := lookupPost(c)
	if err != nil {
		return err
	}

	comments, err := services.ListComment(post)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	authorPostCount, err := services.CountPost(services.FilterPostWithAuthor(database.C, post.Author))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"post":              post,
		"comments":          comments,
		"author_post_count": authorPostCount,
		"form":              commentForm{},
		"csrf_token":        exts.CSRFToken(c),
	})
}

func lookupPost(c *fiber.Ctx) (models.Post, error) {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return models.Post{}, fiber.NewError(fiber.StatusNotFound, "post was not found")
	}

	post, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return post, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return post, nil
}
