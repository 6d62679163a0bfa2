package api

import (
	"errors"
	"strconv"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type postForm struct {
	Text       string `json:"text" form:"text" validate:"required"`
	Group      string `json:"group" form:"group"`
	Image      string `json:"image" form:"-"`
	ImageClear bool   `json:"image_clear" form:"image_clear"`
}

func (v *postForm) Normalize() {
	v.Text = strings.TrimSpace(v.Text)
	v.Group = strings.TrimSpace(v.Group)
}

func newPostForm(post models.Post) postForm {
	form := postForm{Text: post.Text, Image: post.Image}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return form
}

// resolvePostForm turns a bound form into the group it points at and the
// uploaded image path, recording field problems into errs.
func resolvePostForm(c *fiber.Ctx, form postForm, errs exts.FormErrors) (*models.Group, string) {
	var group *models.Group
	if len(form.Group) > 0 {
		id, err := strconv.ParseUint(form.Group, 10, 64)
		if err != nil {
			errs.Add("group", "select a valid choice")
		} else if item, err := services.GetGroupWithID(uint(id)); err != nil {
			errs.Add("group", "select a valid choice, that choice is not one of the available choices")
		} else {
			group = &item
		}
	}
	if len(errs) > 0 {
		return group, ""
	}

	file, err := c.FormFile("image")
	if err != nil {
		return group, ""
	}
	image, err := services.SaveImage(file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImage) || errors.Is(err, services.ErrImageTooLarge) {
			errs.Add("image", err.Error())
		} else {
			errs.Add("__all__", err.Error())
		}
	}
	return group, image
}

func renderPostForm(c *fiber.Ctx, status int, form postForm, errs exts.FormErrors, post *models.Post) error {
	groups, err := services.ListGroup()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(status).JSON(fiber.Map{
		"form":       form,
		"errors":     lo.Ternary(errs == nil, exts.FormErrors{}, errs),
		"csrf_token": exts.CSRFToken(c),
		"groups":     groups,
		"is_edit":    post != nil,
		"post":       post,
	})
}

func renderPostCreator(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	return renderPostForm(c, fiber.StatusOK, postForm{}, nil, nil)
}

func createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user, _ := exts.GetAccount(c)

	var form postForm
	errs := exts.BindForm(c, &form)
	group, image := resolvePostForm(c, form, errs)
	if len(errs) > 0 {
		return renderPostForm(c, fiber.StatusBadRequest, form, errs, nil)
	}

	item := models.Post{
		Text:  form.Text,
		Image: image,
	}
	if group != nil {
		item.GroupID = &group.ID
	}

	if _, err := services.NewPost(user, item); err != nil {
		_ = services.DeleteImage(image)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.Redirect(profileURL(user.Name))
}

// lookupOwnPost loads the post and sends anyone but its author back to it.
func lookupOwnPost(c *fiber.Ctx) (models.Post, error) {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return models.Post{}, err
	}
	user, _ := exts.GetAccount(c)

	post, err := lookupPost(c)
	if err != nil {
		return post, err
	}
	if post.AuthorID != user.ID {
		return post, exts.Redirect(postURL(post.ID))
	}
	return post, nil
}

func renderPostEditor(c *fiber.Ctx) error {
	post, err := lookupOwnPost(c)
	if err != nil {
		return err
	}

	return renderPostForm(c, fiber.StatusOK, newPostForm(post), nil, &post)
}

func editPost(c *fiber.Ctx) error {
	post, err := lookupOwnPost(c)
	if err != nil {
		return err
	}

	var form postForm
	errs := exts.BindForm(c, &form)
	group, image := resolvePostForm(c, form, errs)
	if len(errs) > 0 {
		form.Image = post.Image
		return renderPostForm(c, fiber.StatusBadRequest, form, errs, &post)
	}

	previousImage := post.Image
	post.Text = form.Text
	post.Group = nil
	post.GroupID = nil
	if group != nil {
		post.GroupID = &group.ID
	}
	if len(image) > 0 {
		post.Image = image
	} else if form.ImageClear {
		post.Image = ""
	}

	if _, err := services.EditPost(post); err != nil {
		_ = services.DeleteImage(image)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if previousImage != post.Image {
		if err := services.DeleteImage(previousImage); err != nil {
			log.Warn().Err(err).Str("image", previousImage).Msg("Unable to delete replaced image...")
		}
	}

	return exts.Redirect(postURL(post.ID))
}
