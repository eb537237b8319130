package handlers

import (
	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/middleware"
	"github.com/cradlelog/cradle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SleepHandler struct {
	sleepService *services.SleepService
}

func NewSleepHandler(sleepService *services.SleepService) *SleepHandler {
	return &SleepHandler{sleepService: sleepService}
}

// Create handles POST /sleeps.
func (h *SleepHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateSleepRequest
	if ok, resp := parseAndValidate(c, &req); !ok {
		return resp
	}

	record, err := h.sleepService.Create(userID, &req)
	if err != nil {
		return recordError(c, err, "Failed to create sleep record")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: record.ID})
}

// List handles GET /sleeps. Closed sessions carry a derived duration string.
func (h *SleepHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	records, err := h.sleepService.ListByUser(userID, c.QueryInt("limit", 0))
	if err != nil {
		return recordError(c, err, "Failed to fetch sleep records")
	}

	resp := make([]dto.SleepResponse, len(records))
	for i, r := range records {
		item := dto.SleepResponse{
			ID:        r.ID,
			StartTime: dto.FormatTime(r.StartTime),
			Notes:     r.Notes,
		}
		if r.EndTime != nil {
			end := dto.FormatTime(*r.EndTime)
			item.EndTime = &end
		}
		if d := r.Duration(); d != nil {
			s := d.String()
			item.Duration = &s
		}
		resp[i] = item
	}
	return c.JSON(resp)
}

// Close handles PATCH /sleeps/:id - sets the end time of an open session.
func (h *SleepHandler) Close(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid record ID",
		})
	}

	var req dto.CloseSleepRequest
	if ok, resp := parseAndValidate(c, &req); !ok {
		return resp
	}

	if err := h.sleepService.Close(userID, recordID, &req); err != nil {
		return recordError(c, err, "Failed to close sleep record")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Delete handles DELETE /sleeps/:id.
func (h *SleepHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid record ID",
		})
	}

	if err := h.sleepService.Delete(userID, recordID); err != nil {
		return recordError(c, err, "Failed to delete sleep record")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
