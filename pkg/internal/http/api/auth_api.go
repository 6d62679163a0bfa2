package api

import (
	"errors"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type signupForm struct {
	Name      string `json:"name" form:"name" validate:"required,max=150"`
	Password  string `json:"-" form:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
}

func (v *signupForm) Normalize() {
	v.Name = strings.TrimSpace(v.Name)
	v.FirstName = strings.TrimSpace(v.FirstName)
	v.LastName = strings.TrimSpace(v.LastName)
}

type loginForm struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Password string `json:"-" form:"password" validate:"required"`
	Next     string `json:"next" form:"next"`
}

func renderSignup(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form":       signupForm{},
		"errors":     exts.FormErrors{},
		"csrf_token": exts.CSRFToken(c),
	})
}

func signup(c *fiber.Ctx) error {
	var form signupForm
	errs := exts.BindForm(c, &form)
	if len(errs) == 0 {
		account, err := services.NewAccount(form.Name, form.Password, form.FirstName, form.LastName)
		if err == nil {
			if err := exts.Login(c, account); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return exts.Redirect("/")
		}
		errs.Add("name", err.Error())
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"form":       form,
		"errors":     errs,
		"csrf_token": exts.CSRFToken(c),
	})
}

func renderLogin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form":       loginForm{Next: c.Query("next")},
		"errors":     exts.FormErrors{},
		"csrf_token": exts.CSRFToken(c),
	})
}

func login(c *fiber.Ctx) error {
	var form loginForm
	errs := exts.BindForm(c, &form)
	if len(form.Next) == 0 {
		form.Next = c.Query("next")
	}
	if len(errs) == 0 {
		account, err := services.AuthenticateAccount(form.Name, form.Password)
		if err == nil {
			if err := exts.Login(c, account); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return exts.Redirect(safeNextURL(form.Next))
		} else if !errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		errs.Add("__all__", err.Error())
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"form":       form,
		"errors":     errs,
		"csrf_token": exts.CSRFToken(c),
	})
}

func logout(c *fiber.Ctx) error {
	if err := exts.Logout(c); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return exts.Redirect("/")
}
