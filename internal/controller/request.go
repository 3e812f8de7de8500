package controller

import (
	"digraph-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseBody decodes the JSON body into a T and validates it. The fill funcs
// run in between, for fields that come from the path.
func parseBody[T any](ctx *fiber.Ctx, fill ...func(*T)) (*T, error) {
	req := new(T)
	if err := ctx.BodyParser(req); err != nil {
		return nil, serverutils.BadRequest("Invalid request body")
	}
	for _, f := range fill {
		f(req)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// pathID reads the :id route param
func pathID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.BadRequest("Invalid ID")
	}
	return id, nil
}
