package handlers

import (
	"errors"

	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/middleware"
	"github.com/cradlelog/cradle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FeedingHandler struct {
	feedingService *services.FeedingService
}

func NewFeedingHandler(feedingService *services.FeedingService) *FeedingHandler {
	return &FeedingHandler{feedingService: feedingService}
}

// Create handles POST /feedings.
func (h *FeedingHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateFeedingRequest
	if ok, resp := parseAndValidate(c, &req); !ok {
		return resp
	}

	record, err := h.feedingService.Create(userID, &req)
	if err != nil {
		return recordError(c, err, "Failed to create feeding record")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: record.ID})
}

// List handles GET /feedings - newest first, capped at ?limit (default 50).
func (h *FeedingHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	records, err := h.feedingService.ListByUser(userID, c.QueryInt("limit", 0))
	if err != nil {
		return recordError(c, err, "Failed to fetch feeding records")
	}

	resp := make([]dto.FeedingResponse, len(records))
	for i, r := range records {
		resp[i] = dto.FeedingResponse{
			ID:        r.ID,
			Type:      r.FeedingType,
			Amount:    r.Amount,
			Duration:  r.Duration,
			Notes:     r.Notes,
			Timestamp: dto.FormatTime(r.Timestamp),
		}
	}
	return c.JSON(resp)
}

// Delete handles DELETE /feedings/:id.
func (h *FeedingHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.feedingService.Delete(userID, recordID); err != nil {
		return recordError(c, err, "Failed to delete feeding record")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// recordError maps record-service errors onto HTTP statuses. Not-owned and
// absent records are indistinguishable here on purpose.
func recordError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Record not found",
		})
	case errors.Is(err, services.ErrInvalidTimestamp), errors.Is(err, services.ErrInvalidRecord):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
