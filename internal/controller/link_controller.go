package controller

import (
	"digraph-be/internal/dto"
	"digraph-be/internal/pkg/serverutils"
	"digraph-be/internal/service"
	"digraph-be/pkg/flash"

	"github.com/gofiber/fiber/v2"
)

type ILinkController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type linkController struct {
	service   service.ILinkService
	messenger flash.Messenger
	jwtSecret string
}

func NewLinkController(service service.ILinkService, messenger flash.Messenger, jwtSecret string) ILinkController {
	return &linkController{service: service, messenger: messenger, jwtSecret: jwtSecret}
}

func (c *linkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/link/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("", c.Upsert)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *linkController) Upsert(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.UpsertLinkRequest](ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Upsert(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	flash.Drain(c.messenger, userId, res.Alerts)

	return ctx.JSON(serverutils.SuccessResponse("Success save link", res))
}

func (c *linkController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.UpdateLinkRequest](ctx, func(r *dto.UpdateLinkRequest) { r.Id = id })
	if err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	flash.Drain(c.messenger, userId, res.Alerts)

	return ctx.JSON(serverutils.SuccessResponse("Success update link", res))
}

func (c *linkController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Delete(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	flash.Drain(c.messenger, userId, res.Alerts)

	return ctx.JSON(serverutils.SuccessResponse("Success delete link", res))
}
