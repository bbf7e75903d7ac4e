package controller

import (
	"github.com/gofiber/fiber/v2"

	"llm-council-be/internal/pkg/serverutils"
	"llm-council-be/internal/service"
)

type IConfigController interface {
	RegisterRoutes(r fiber.Router)
	GetConfig(ctx *fiber.Ctx) error
	RefreshModels(ctx *fiber.Ctx) error
}

type configController struct {
	service service.IConfigService
}

func NewConfigController(service service.IConfigService) IConfigController {
	return &configController{service: service}
}

func (c *configController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/config/v1")
	h.Get("/", c.GetConfig)
	h.Post("/refresh-models", c.RefreshModels)
}

func (c *configController) GetConfig(ctx *fiber.Ctx) error {
	res, err := c.service.GetConfig(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Council configuration", res))
}

func (c *configController) RefreshModels(ctx *fiber.Ctx) error {
	res, err := c.service.RefreshModels(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Model catalog refreshed", res))
}
