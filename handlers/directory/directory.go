package directory

import (
	"strings"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	dbquery "github.com/cse-dept/cms-api/utils/query"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const directoryOrder = "name ASC, id ASC"

// DirectoryHandler handles the department contact directory
type DirectoryHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(db *gorm.DB) *DirectoryHandler {
	return &DirectoryHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateEntryRequest represents the request to add a directory entry
type CreateEntryRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=255"`
	Role     string `json:"role" form:"role" validate:"required,max=255"`
	Phone    string `json:"phone" form:"phone" validate:"max=50"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Location string `json:"location" form:"location" validate:"max=255"`
}

// UpdateEntryRequest represents a partial directory entry update
type UpdateEntryRequest struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,min=1,max=255"`
	Role     *string `json:"role" form:"role" validate:"omitempty,min=1,max=255"`
	Phone    *string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Location *string `json:"location" form:"location" validate:"omitempty,max=255"`
}

// ListEntries handles GET /api/admin/directory and GET /api/public/directory?q=
func (h *DirectoryHandler) ListEntries(c *fiber.Ctx) error {
	query := h.db.WithContext(c.UserContext()).Order(directoryOrder)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = dbquery.Contains(query, q, "name", "role", "location")
	}

	entries := []model.DirectoryEntry{}
	if err := query.Find(&entries).Error; err != nil {
		return err
	}
	return response.List(c, entries)
}

// GetEntry handles GET /api/admin/directory/:id
func (h *DirectoryHandler) GetEntry(c *fiber.Ctx) error {
	var entry model.DirectoryEntry
	if err := common.FindByParam(c, h.db, &entry, "directory entry"); err != nil {
		return err
	}
	return response.Success(c, entry)
}

// CreateEntry handles POST /api/admin/directory
func (h *DirectoryHandler) CreateEntry(c *fiber.Ctx) error {
	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Role = validation.SanitizeString(req.Role)
	req.Email = validation.SanitizeString(req.Email)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	entry := model.DirectoryEntry{
		Name:     req.Name,
		Role:     req.Role,
		Phone:    validation.SanitizeString(req.Phone),
		Email:    req.Email,
		Location: validation.SanitizeString(req.Location),
	}
	if err := h.db.WithContext(c.UserContext()).Create(&entry).Error; err != nil {
		return err
	}

	return response.Created(c, entry)
}

// UpdateEntry handles PUT /api/admin/directory/:id
func (h *DirectoryHandler) UpdateEntry(c *fiber.Ctx) error {
	var entry model.DirectoryEntry
	if err := common.FindByParam(c, h.db, &entry, "directory entry"); err != nil {
		return err
	}

	var req UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizePtr(req.Name)
	req.Role = validation.SanitizePtr(req.Role)
	req.Email = validation.SanitizePtr(req.Email)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Role != nil {
		entry.Role = *req.Role
	}
	if req.Phone != nil {
		entry.Phone = validation.SanitizeString(*req.Phone)
	}
	if req.Email != nil {
		entry.Email = *req.Email
	}
	if req.Location != nil {
		entry.Location = validation.SanitizeString(*req.Location)
	}

	if err := h.db.WithContext(c.UserContext()).Save(&entry).Error; err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Directory entry updated successfully", entry)
}

// DeleteEntry handles DELETE /api/admin/directory/:id
func (h *DirectoryHandler) DeleteEntry(c *fiber.Ctx) error {
	var entry model.DirectoryEntry
	if err := common.FindByParam(c, h.db, &entry, "directory entry"); err != nil {
		return err
	}

	if err := h.db.WithContext(c.UserContext()).Delete(&entry).Error; err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Directory entry deleted successfully", nil)
}
