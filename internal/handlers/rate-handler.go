package handlers

import (
	"claimbot/internal/middleware"
	"claimbot/internal/models"
	"claimbot/internal/service"

	"github.com/gofiber/fiber/v3"
)

type RateHandler struct {
	rateService *service.RateService
}

func NewRateHandler(rateService *service.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

func (h *RateHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	rateGroup := app.Group("/protected/admin/rates", auth)

	rateGroup.Get("/", h.ListRates, middleware.PermissionRequired(middleware.ReadRatesPermission))
	rateGroup.Get("/:id", h.GetRate, middleware.PermissionRequired(middleware.ReadRatesPermission))
	rateGroup.Post("/", h.CreateRate, middleware.PermissionRequired(middleware.WriteRatesPermission))
	rateGroup.Patch("/:id", h.PatchRate, middleware.PermissionRequired(middleware.UpdateRatesPermission))
}

func (h *RateHandler) ListRates(c fiber.Ctx) error {
	var (
		rates []models.RateConfig
		err   error
	)
	if rateType := c.Query("type"); rateType != "" {
		rates, err = h.rateService.RatesByType(c.Context(), models.RateType(rateType))
	} else {
		rates, err = h.rateService.Table(c.Context())
	}
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"rates": rates,
			"count": len(rates),
		},
	})
}

func (h *RateHandler) GetRate(c fiber.Ctx) error {
	rate, err := h.rateService.GetRate(c.Context(), c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"rate": rate,
		},
	})
}

func (h *RateHandler) CreateRate(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var createRequest models.CreateRateRequest
	if err := c.Bind().Body(&createRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rate, err := h.rateService.CreateRate(c.Context(), actor.ID, &createRequest)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Rate Created Successfully",
		"data": fiber.Map{
			"rate": rate,
		},
	})
}

// PatchRate only touches the description; rate values are append-only and
// corrections go in as a new entry with a later effective date.
func (h *RateHandler) PatchRate(c fiber.Ctx) error {
	var patchRequest models.PatchRateRequest
	if err := c.Bind().Body(&patchRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rate, err := h.rateService.PatchRate(c.Context(), c.Params("id"), &patchRequest)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Rate Updated Successfully",
		"data": fiber.Map{
			"rate": rate,
		},
	})
}
