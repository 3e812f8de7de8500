package controller

import (
	"digraph-be/internal/dto"
	"digraph-be/internal/pkg/serverutils"
	"digraph-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Path(ctx *fiber.Ctx) error
	Seed(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

// RegisterRoutes mounts the public search box endpoints
func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("/path", c.Path)
	h.Post("/seed", c.Seed)
}

func (c *searchController) Path(ctx *fiber.Ctx) error {
	req, err := parseBody[dto.SearchPathRequest](ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build search path", c.service.Path(req)))
}

func (c *searchController) Seed(ctx *fiber.Ctx) error {
	req, err := parseBody[dto.SearchSeedRequest](ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build search seed", c.service.Seed(req)))
}
