package program

import (
	"errors"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const programOrder = "level ASC, display_order ASC, name ASC, id ASC"

// ListPrograms handles GET /api/admin/programs and returns every program
// with its full section tree
func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	var programs []model.Program
	if err := withTree(h.db.WithContext(c.UserContext())).
		Order(programOrder).
		Find(&programs).Error; err != nil {
		return err
	}

	details := make([]ProgramDetail, 0, len(programs))
	for i := range programs {
		details = append(details, toDetail(&programs[i]))
	}
	return response.List(c, details)
}

// GetProgram handles GET /api/admin/programs/:id
func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	return h.programDetail(c)
}

// CreateProgram handles POST /api/admin/programs
func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.ShortName = validation.SanitizeString(req.ShortName)
	req.Level = validation.SanitizeString(req.Level)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	pdfURL, err := h.uploads.FromForm(c, "curriculum", storage.KindPDF)
	if err != nil {
		return uploads.Respond(c, err)
	}

	program := model.Program{
		Name:         req.Name,
		ShortName:    req.ShortName,
		Level:        req.Level,
		Description:  validation.SanitizeString(req.Description),
		Overview:     validation.SanitizeString(req.Overview),
		Duration:     validation.SanitizeString(req.Duration),
		TotalCredits: req.TotalCredits,
		DisplayOrder: common.IntOr(req.DisplayOrder, 0),
	}
	if pdfURL != "" {
		program.CurriculumPDFPath = &pdfURL
	}

	if err := h.db.WithContext(ctx).Create(&program).Error; err != nil {
		common.Abandon(ctx, h.uploads, pdfURL)
		return err
	}

	common.Index(ctx, h.indexer, search.FromProgram(program))
	return response.Created(c, toDetail(&program))
}

// UpdateProgram handles PUT /api/admin/programs/:id
func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	programID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	ctx := c.UserContext()
	db := h.db.WithContext(ctx)

	var program model.Program
	if err := db.First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return err
	}

	var req UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = validation.SanitizePtr(req.Name)
	req.Level = validation.SanitizePtr(req.Level)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	pdfURL, err := h.uploads.FromForm(c, "curriculum", storage.KindPDF)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.ShortName != nil {
		program.ShortName = validation.SanitizeString(*req.ShortName)
	}
	if req.Level != nil {
		program.Level = *req.Level
	}
	if req.Description != nil {
		program.Description = validation.SanitizeString(*req.Description)
	}
	if req.Overview != nil {
		program.Overview = validation.SanitizeString(*req.Overview)
	}
	if req.Duration != nil {
		program.Duration = validation.SanitizeString(*req.Duration)
	}
	if req.TotalCredits != nil {
		program.TotalCredits = req.TotalCredits
	}
	if req.DisplayOrder != nil {
		program.DisplayOrder = *req.DisplayOrder
	}

	var oldPDF string
	if pdfURL != "" {
		if program.CurriculumPDFPath != nil {
			oldPDF = *program.CurriculumPDFPath
		}
		program.CurriculumPDFPath = &pdfURL
	}

	if err := db.Omit("Sections").Save(&program).Error; err != nil {
		common.Abandon(ctx, h.uploads, pdfURL)
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldPDF)
	common.Index(ctx, h.indexer, search.FromProgram(program))

	if err := withTree(db).First(&program, program.ID).Error; err != nil {
		return err
	}
	return common.Saved(c, "Program updated successfully", toDetail(&program), cleanup)
}

// DeleteProgram handles DELETE /api/admin/programs/:id. Sections and
// everything below them go with it through ON DELETE CASCADE.
func (h *ProgramHandler) DeleteProgram(c *fiber.Ctx) error {
	programID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	ctx := c.UserContext()
	db := h.db.WithContext(ctx)

	var program model.Program
	if err := db.First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return err
	}

	if err := db.Delete(&program).Error; err != nil {
		return err
	}

	var cleanup []uploads.DeleteResult
	if program.CurriculumPDFPath != nil {
		cleanup = common.Discard(ctx, h.uploads, *program.CurriculumPDFPath)
	}
	common.Unindex(ctx, h.indexer, search.KindProgram, program.ID)

	return common.Saved(c, "Program deleted successfully", nil, cleanup)
}

// ListPublicPrograms handles GET /api/public/programs
func (h *ProgramHandler) ListPublicPrograms(c *fiber.Ctx) error {
	var programs []model.Program
	query := h.db.WithContext(c.UserContext()).Order(programOrder)
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if err := query.Find(&programs).Error; err != nil {
		return err
	}

	summaries := make([]ProgramSummary, 0, len(programs))
	for i := range programs {
		summaries = append(summaries, toSummary(&programs[i]))
	}
	return response.List(c, summaries)
}

// GetPublicProgram handles GET /api/public/programs/:id
func (h *ProgramHandler) GetPublicProgram(c *fiber.Ctx) error {
	return h.programDetail(c)
}

func (h *ProgramHandler) programDetail(c *fiber.Ctx) error {
	programID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	var program model.Program
	if err := withTree(h.db.WithContext(c.UserContext())).First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return err
	}

	return response.Success(c, toDetail(&program))
}
