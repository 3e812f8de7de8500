package controller

import (
	"digraph-be/internal/dto"
	"digraph-be/internal/pkg/serverutils"
	"digraph-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
}

type userController struct {
	service   service.IUserService
	jwtSecret string
}

func NewUserController(service service.IUserService, jwtSecret string) IUserController {
	return &userController{service: service, jwtSecret: jwtSecret}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("/me", c.GetProfile)
	h.Put("/me", c.UpdateProfile)
	h.Delete("/me", c.DeleteAccount)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.UpdateProfileRequest](ctx)
	if err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) DeleteAccount(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.DeleteAccountRequest](ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteAccount(ctx.Context(), userId, req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Account deleted", nil))
}
