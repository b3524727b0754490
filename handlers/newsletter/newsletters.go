package newsletter

import (
	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/dates"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const newsletterOrder = "issue_date DESC, id DESC"

// NewsletterHandler handles newsletter issues. Every issue carries a PDF.
type NewsletterHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	validator *validation.Validator
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(db *gorm.DB, uploadSvc *uploads.Service) *NewsletterHandler {
	return &NewsletterHandler{
		db:        db,
		uploads:   uploadSvc,
		validator: validation.NewValidator(),
	}
}

// CreateNewsletterRequest represents the request to create an issue.
// The PDF arrives as the multipart file "pdf" and is required.
type CreateNewsletterRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	IssueDate   string `json:"issueDate" form:"issueDate" validate:"required"`
	Description string `json:"description" form:"description"`
}

// UpdateNewsletterRequest represents a partial issue update
type UpdateNewsletterRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	IssueDate   *string `json:"issueDate" form:"issueDate"`
	Description *string `json:"description" form:"description"`
}

// ListNewsletters handles GET /api/admin/newsletters and GET /api/public/newsletters
func (h *NewsletterHandler) ListNewsletters(c *fiber.Ctx) error {
	items := []model.Newsletter{}
	if err := h.db.WithContext(c.UserContext()).Order(newsletterOrder).Find(&items).Error; err != nil {
		return err
	}
	return response.List(c, items)
}

// GetNewsletter handles GET /api/admin/newsletters/:id
func (h *NewsletterHandler) GetNewsletter(c *fiber.Ctx) error {
	var item model.Newsletter
	if err := common.FindByParam(c, h.db, &item, "newsletter"); err != nil {
		return err
	}
	return response.Success(c, item)
}

// CreateNewsletter handles POST /api/admin/newsletters
func (h *NewsletterHandler) CreateNewsletter(c *fiber.Ctx) error {
	var req CreateNewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	issueDate, err := dates.Parse(req.IssueDate)
	if err != nil {
		return response.FieldErrors(c, []validation.FieldError{{Field: "issueDate", Message: "issueDate must be a date"}})
	}

	ctx := c.UserContext()
	pdfURL, err := h.uploads.FromForm(c, "pdf", storage.KindPDF)
	if err != nil {
		return uploads.Respond(c, err)
	}
	if pdfURL == "" {
		return response.FieldErrors(c, []validation.FieldError{{Field: "pdf", Message: "PDF file is required"}})
	}

	item := model.Newsletter{
		Title:       req.Title,
		IssueDate:   issueDate,
		Description: validation.SanitizeString(req.Description),
		PDFPath:     pdfURL,
	}
	if err := h.db.WithContext(ctx).Create(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, pdfURL)
		return err
	}

	return response.Created(c, item)
}

// UpdateNewsletter handles PUT /api/admin/newsletters/:id
func (h *NewsletterHandler) UpdateNewsletter(c *fiber.Ctx) error {
	var item model.Newsletter
	if err := common.FindByParam(c, h.db, &item, "newsletter"); err != nil {
		return err
	}

	var req UpdateNewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizePtr(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.IssueDate != nil {
		issueDate, err := dates.Parse(*req.IssueDate)
		if err != nil {
			return response.FieldErrors(c, []validation.FieldError{{Field: "issueDate", Message: "issueDate must be a date"}})
		}
		item.IssueDate = issueDate
	}

	ctx := c.UserContext()
	pdfURL, err := h.uploads.FromForm(c, "pdf", storage.KindPDF)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = validation.SanitizeString(*req.Description)
	}

	var oldPDF string
	if pdfURL != "" {
		oldPDF = item.PDFPath
		item.PDFPath = pdfURL
	}

	if err := h.db.WithContext(ctx).Save(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, pdfURL)
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldPDF)
	return common.Saved(c, "Newsletter updated successfully", item, cleanup)
}

// DeleteNewsletter handles DELETE /api/admin/newsletters/:id
func (h *NewsletterHandler) DeleteNewsletter(c *fiber.Ctx) error {
	var item model.Newsletter
	if err := common.FindByParam(c, h.db, &item, "newsletter"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, item.PDFPath)
	return common.Saved(c, "Newsletter deleted successfully", nil, cleanup)
}
