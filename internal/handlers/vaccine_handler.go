package handlers

import (
	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/middleware"
	"github.com/cradlelog/cradle-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VaccineHandler struct {
	vaccineService *services.VaccineService
}

func NewVaccineHandler(vaccineService *services.VaccineService) *VaccineHandler {
	return &VaccineHandler{vaccineService: vaccineService}
}

// Create handles POST /vaccines.
func (h *VaccineHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateVaccineRequest
	if ok, resp := parseAndValidate(c, &req); !ok {
		return resp
	}

	record, err := h.vaccineService.Create(userID, &req)
	if err != nil {
		return recordError(c, err, "Failed to create vaccine record")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: record.ID})
}

// List handles GET /vaccines - full history, newest first.
func (h *VaccineHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	records, err := h.vaccineService.ListByUser(userID)
	if err != nil {
		return recordError(c, err, "Failed to fetch vaccine records")
	}

	resp := make([]dto.VaccineResponse, len(records))
	for i, r := range records {
		resp[i] = dto.VaccineResponse{
			ID:          r.ID,
			VaccineName: r.VaccineName,
			DateGiven:   dto.FormatTime(r.DateGiven),
			Notes:       r.Notes,
		}
	}
	return c.JSON(resp)
}

// Delete handles DELETE /vaccines/:id.
func (h *VaccineHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.vaccineService.Delete(userID, recordID); err != nil {
		return recordError(c, err, "Failed to delete vaccine record")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
