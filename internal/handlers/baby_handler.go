package handlers

import (
	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/middleware"
	"github.com/cradlelog/cradle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BabyHandler struct {
	babyService *services.BabyService
}

func NewBabyHandler(babyService *services.BabyService) *BabyHandler {
	return &BabyHandler{babyService: babyService}
}

func (h *BabyHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateBabyRequest
	if ok, resp := parseAndValidate(c, &req); !ok {
		return resp
	}

	baby, err := h.babyService.Create(userID, &req)
	if err != nil {
		return recordError(c, err, "Failed to create baby profile")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: baby.ID})
}

func (h *BabyHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	babies, err := h.babyService.ListByUser(userID)
	if err != nil {
		return recordError(c, err, "Failed to fetch baby profiles")
	}
	return c.JSON(babies)
}
