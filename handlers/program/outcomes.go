package program

import (
	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// CreateOutcome handles POST /api/admin/programs/sections/:id/outcomes
func (h *ProgramHandler) CreateOutcome(c *fiber.Ctx) error {
	sectionID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid section ID")
	}

	var req CreateOutcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.OutcomeCode = validation.SanitizeString(req.OutcomeCode)
	req.OutcomeText = validation.SanitizeString(req.OutcomeText)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	db := h.db.WithContext(c.UserContext())
	if err := h.requireSection(db, sectionID); err != nil {
		return h.missing(c, err, "Section not found")
	}

	outcome := model.ProgramOutcome{
		SectionID:    sectionID,
		OutcomeCode:  req.OutcomeCode,
		OutcomeText:  req.OutcomeText,
		DisplayOrder: common.IntOr(req.DisplayOrder, 0),
	}
	if err := db.Create(&outcome).Error; err != nil {
		return err
	}

	return response.Created(c, toOutcomeDetail(&outcome))
}

// UpdateOutcome handles PUT /api/admin/programs/outcomes/:id
func (h *ProgramHandler) UpdateOutcome(c *fiber.Ctx) error {
	outcomeID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid outcome ID")
	}

	db := h.db.WithContext(c.UserContext())

	var outcome model.ProgramOutcome
	if err := db.First(&outcome, outcomeID).Error; err != nil {
		return h.missing(c, err, "Outcome not found")
	}

	var req UpdateOutcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.OutcomeCode = validation.SanitizePtr(req.OutcomeCode)
	req.OutcomeText = validation.SanitizePtr(req.OutcomeText)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.OutcomeCode != nil {
		outcome.OutcomeCode = *req.OutcomeCode
	}
	if req.OutcomeText != nil {
		outcome.OutcomeText = *req.OutcomeText
	}
	if req.DisplayOrder != nil {
		outcome.DisplayOrder = *req.DisplayOrder
	}

	if err := db.Save(&outcome).Error; err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Outcome updated successfully", toOutcomeDetail(&outcome))
}

// DeleteOutcome handles DELETE /api/admin/programs/outcomes/:id
func (h *ProgramHandler) DeleteOutcome(c *fiber.Ctx) error {
	outcomeID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid outcome ID")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.ProgramOutcome{}, outcomeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Outcome not found")
	}

	return response.SuccessWithMessage(c, "Outcome deleted successfully", nil)
}
