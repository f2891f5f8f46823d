package controller

import (
	"mufessir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFilterController interface {
	RegisterRoutes(r fiber.Router)
	Options(ctx *fiber.Ctx) error
}

type filterController struct {
	filterService service.IFilterService
}

func NewFilterController(filterService service.IFilterService) IFilterController {
	return &filterController{
		filterService: filterService,
	}
}

func (c *filterController) RegisterRoutes(r fiber.Router) {
	r.Get("/filters", c.Options)
}

func (c *filterController) Options(ctx *fiber.Ctx) error {
	res, err := c.filterService.GetOptions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
