package controller

import (
	"digraph-be/internal/dto"
	"digraph-be/internal/pkg/serverutils"
	"digraph-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
}

// authController serves the only unauthenticated routes besides search
type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	auth := r.Group("/auth")
	auth.Post("/register", c.Register)
	auth.Post("/login", c.Login)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	req, err := parseBody[dto.RegisterRequest](ctx)
	if err != nil {
		return err
	}
	account, err := c.service.Register(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Account created", account))
}

// Login returns a bearer token. The user agent is recorded on the login event.
func (c *authController) Login(ctx *fiber.Ctx) error {
	req, err := parseBody[dto.LoginRequest](ctx)
	if err != nil {
		return err
	}
	session, err := c.service.Login(ctx.Context(), req, ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in", session))
}
