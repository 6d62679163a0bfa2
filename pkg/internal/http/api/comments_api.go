package api

import (
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type commentForm struct {
	Text string `json:"text" form:"text" validate:"required,max=4096"`
}

func (v *commentForm) Normalize() {
	v.Text = strings.TrimSpace(v.Text)
}

// createComment always ends on the post page, an invalid form only
// skips the insert.
func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user, _ := exts.GetAccount(c)

	post, err := lookupPost(c)
	if err != nil {
		return err
	}

	var form commentForm
	if errs := exts.BindForm(c, &form); len(errs) == 0 {
		if _, err := services.NewComment(user, post, form.Text); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	} else {
		log.Debug().Any("errors", errs).Uint("post", post.ID).Msg("Skipped invalid comment.")
	}

	return exts.Redirect(postURL(post.ID))
}
