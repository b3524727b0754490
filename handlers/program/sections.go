package program

import (
	"errors"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/htmlsanitize"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListSections handles GET /api/admin/programs/:id/sections
func (h *ProgramHandler) ListSections(c *fiber.Ctx) error {
	programID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	db := h.db.WithContext(c.UserContext())
	if err := h.requireProgram(db, programID); err != nil {
		return h.missing(c, err, "Program not found")
	}

	var sections []model.ProgramSection
	if err := withSectionTree(db).
		Where("program_id = ?", programID).
		Scopes(byDisplayOrder).
		Find(&sections).Error; err != nil {
		return err
	}

	details := make([]SectionDetail, 0, len(sections))
	for i := range sections {
		details = append(details, toSectionDetail(&sections[i]))
	}
	return response.List(c, details)
}

// CreateSection handles POST /api/admin/programs/:id/sections
func (h *ProgramHandler) CreateSection(c *fiber.Ctx) error {
	programID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	var req CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	req.SectionType = validation.SanitizeString(req.SectionType)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	db := h.db.WithContext(c.UserContext())
	if err := h.requireProgram(db, programID); err != nil {
		return h.missing(c, err, "Program not found")
	}

	section := model.ProgramSection{
		ProgramID:    programID,
		Title:        req.Title,
		SectionType:  req.SectionType,
		DisplayOrder: common.IntOr(req.DisplayOrder, 0),
		IsExpanded:   common.BoolOr(req.IsExpanded, false),
	}
	if err := db.Create(&section).Error; err != nil {
		return err
	}

	return response.Created(c, toSectionDetail(&section))
}

// UpdateSection handles PUT /api/admin/programs/sections/:id
func (h *ProgramHandler) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid section ID")
	}

	db := h.db.WithContext(c.UserContext())

	var section model.ProgramSection
	if err := db.First(&section, sectionID).Error; err != nil {
		return h.missing(c, err, "Section not found")
	}

	var req UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizePtr(req.Title)
	req.SectionType = validation.SanitizePtr(req.SectionType)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.SectionType != nil {
		section.SectionType = *req.SectionType
	}
	if req.DisplayOrder != nil {
		section.DisplayOrder = *req.DisplayOrder
	}
	if req.IsExpanded != nil {
		section.IsExpanded = *req.IsExpanded
	}

	if err := db.Save(&section).Error; err != nil {
		return err
	}

	if err := withSectionTree(db).First(&section, section.ID).Error; err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Section updated successfully", toSectionDetail(&section))
}

// DeleteSection handles DELETE /api/admin/programs/sections/:id
func (h *ProgramHandler) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid section ID")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.ProgramSection{}, sectionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Section not found")
	}

	return response.SuccessWithMessage(c, "Section deleted successfully", nil)
}

// UpsertContent handles POST /api/admin/programs/sections/content.
// A section holds at most one content row; repeated calls overwrite it.
func (h *ProgramHandler) UpsertContent(c *fiber.Ctx) error {
	var req UpsertContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	db := h.db.WithContext(c.UserContext())

	var section model.ProgramSection
	if err := db.Select("id").First(&section, req.SectionID).Error; err != nil {
		return h.missing(c, err, "Section not found")
	}

	html := htmlsanitize.Sanitize(req.ContentHTML)

	var content model.SectionContent
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Where(model.SectionContent{SectionID: req.SectionID}).
			Assign(map[string]interface{}{"content_html": html}).
			FirstOrCreate(&content).Error
	})
	if err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Section content saved successfully", toContentDetail(&content))
}

func (h *ProgramHandler) requireProgram(db *gorm.DB, programID uint) error {
	var program model.Program
	return db.Select("id").First(&program, programID).Error
}

func (h *ProgramHandler) requireSection(db *gorm.DB, sectionID uint) error {
	var section model.ProgramSection
	return db.Select("id").First(&section, sectionID).Error
}

// missing maps a lookup miss to a 404 naming the resource
func (h *ProgramHandler) missing(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, message)
	}
	return err
}
