package controller

import (
	"digraph-be/internal/dto"
	"digraph-be/internal/pkg/serverutils"
	"digraph-be/internal/service"
	"digraph-be/pkg/flash"

	"github.com/gofiber/fiber/v2"
)

type ITopicController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateParents(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type topicController struct {
	service   service.ITopicService
	messenger flash.Messenger
	jwtSecret string
}

func NewTopicController(service service.ITopicService, messenger flash.Messenger, jwtSecret string) ITopicController {
	return &topicController{service: service, messenger: messenger, jwtSecret: jwtSecret}
}

func (c *topicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/topic/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Put(":id/parents", c.UpdateParents)
	h.Delete(":id", c.Delete)
}

// pathID reads the :id route param
func (c *topicController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), userId, id, ctx.Query("q"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show topic", res))
}

func (c *topicController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.CreateTopicRequest](ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	flash.Drain(c.messenger, userId, res.Alerts)

	return ctx.JSON(serverutils.SuccessResponse("Success create topic", res))
}

func (c *topicController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.UpdateTopicRequest](ctx, func(r *dto.UpdateTopicRequest) { r.Id = id })
	if err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	flash.Drain(c.messenger, userId, res.Alerts)

	return ctx.JSON(serverutils.SuccessResponse("Success update topic", res))
}

func (c *topicController) UpdateParents(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	req, err := parseBody[dto.UpdateTopicParentsRequest](ctx, func(r *dto.UpdateTopicParentsRequest) { r.Id = id })
	if err != nil {
		return err
	}

	res, err := c.service.UpdateParents(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	flash.Drain(c.messenger, userId, res.Alerts)

	return ctx.JSON(serverutils.SuccessResponse("Success move topic", res))
}

func (c *topicController) Delete(ctx *fiber.Ctx) error {
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

	return ctx.JSON(serverutils.SuccessResponse("Success delete topic", res))
}
