package research

import (
	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/pagination"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const researchOrder = "display_order ASC, id ASC"

// ResearchHandler handles research areas, projects, publications and patents
type ResearchHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
}

// NewResearchHandler creates a new research handler. indexer may be nil.
func NewResearchHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *ResearchHandler {
	return &ResearchHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
	}
}

// CreateResearchRequest represents the request to create a research entry
type CreateResearchRequest struct {
	Title         string  `json:"title" form:"title" validate:"required,max=255"`
	Category      string  `json:"category" form:"category" validate:"omitempty,oneof=Area Project Publication Patent"`
	Description   string  `json:"description" form:"description"`
	Faculty       string  `json:"faculty" form:"faculty"`
	FundingAgency string  `json:"funding_agency" form:"funding_agency" validate:"max=255"`
	FundingAmount string  `json:"funding_amount" form:"funding_amount" validate:"max=100"`
	Duration      string  `json:"duration" form:"duration" validate:"max=100"`
	Status        *string `json:"status" form:"status" validate:"omitempty,oneof=Ongoing Completed Published Proposed"`
	Link          string  `json:"link" form:"link" validate:"omitempty,url,max=500"`
	DisplayOrder  *int    `json:"display_order" form:"display_order"`
	IsFeatured    *bool   `json:"is_featured" form:"is_featured"`
}

// UpdateResearchRequest represents a partial research update
type UpdateResearchRequest struct {
	Title         *string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	Category      *string `json:"category" form:"category" validate:"omitempty,oneof=Area Project Publication Patent"`
	Description   *string `json:"description" form:"description"`
	Faculty       *string `json:"faculty" form:"faculty"`
	FundingAgency *string `json:"funding_agency" form:"funding_agency" validate:"omitempty,max=255"`
	FundingAmount *string `json:"funding_amount" form:"funding_amount" validate:"omitempty,max=100"`
	Duration      *string `json:"duration" form:"duration" validate:"omitempty,max=100"`
	Status        *string `json:"status" form:"status" validate:"omitempty,oneof=Ongoing Completed Published Proposed"`
	Link          *string `json:"link" form:"link" validate:"omitempty,url,max=500"`
	DisplayOrder  *int    `json:"display_order" form:"display_order"`
	IsFeatured    *bool   `json:"is_featured" form:"is_featured"`
}

// ListResearch handles GET /api/admin/research
func (h *ResearchHandler) ListResearch(c *fiber.Ctx) error {
	items := []model.Research{}
	if err := h.db.WithContext(c.UserContext()).Order(researchOrder).Find(&items).Error; err != nil {
		return err
	}
	return response.List(c, items)
}

// GetResearch handles GET /api/admin/research/:id and GET /api/public/research/:id
func (h *ResearchHandler) GetResearch(c *fiber.Ctx) error {
	var item model.Research
	if err := common.FindByParam(c, h.db, &item, "research"); err != nil {
		return err
	}
	return response.Success(c, item)
}

// CreateResearch handles POST /api/admin/research
func (h *ResearchHandler) CreateResearch(c *fiber.Ctx) error {
	var req CreateResearchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	req.Link = validation.SanitizeString(req.Link)
	req.Status = emptyToNil(validation.SanitizePtr(req.Status))
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	category := req.Category
	if category == "" {
		category = model.ResearchArea
	}

	item := model.Research{
		Title:         req.Title,
		Category:      category,
		Description:   validation.SanitizeString(req.Description),
		Faculty:       validation.SanitizeString(req.Faculty),
		FundingAgency: validation.SanitizeString(req.FundingAgency),
		FundingAmount: validation.SanitizeString(req.FundingAmount),
		Duration:      validation.SanitizeString(req.Duration),
		Status:        req.Status,
		Link:          req.Link,
		ImagePath:     imageURL,
		DisplayOrder:  common.IntOr(req.DisplayOrder, 0),
		IsFeatured:    common.BoolOr(req.IsFeatured, false),
	}
	if err := h.db.WithContext(ctx).Create(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	common.Index(ctx, h.indexer, search.FromResearch(item))
	return response.Created(c, item)
}

// UpdateResearch handles PUT /api/admin/research/:id
func (h *ResearchHandler) UpdateResearch(c *fiber.Ctx) error {
	var item model.Research
	if err := common.FindByParam(c, h.db, &item, "research"); err != nil {
		return err
	}

	var req UpdateResearchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizePtr(req.Title)
	req.Link = validation.SanitizePtr(req.Link)
	req.Category = validation.SanitizePtr(req.Category)
	req.Status = validation.SanitizePtr(req.Status)
	statusSent := req.Status != nil
	req.Status = emptyToNil(req.Status)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Category != nil && *req.Category != "" {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = validation.SanitizeString(*req.Description)
	}
	if req.Faculty != nil {
		item.Faculty = validation.SanitizeString(*req.Faculty)
	}
	if req.FundingAgency != nil {
		item.FundingAgency = validation.SanitizeString(*req.FundingAgency)
	}
	if req.FundingAmount != nil {
		item.FundingAmount = validation.SanitizeString(*req.FundingAmount)
	}
	if req.Duration != nil {
		item.Duration = validation.SanitizeString(*req.Duration)
	}
	// an empty status clears it
	if statusSent {
		item.Status = req.Status
	}
	if req.Link != nil {
		item.Link = *req.Link
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}

	var oldImage string
	if imageURL != "" {
		oldImage = item.ImagePath
		item.ImagePath = imageURL
	}

	if err := h.db.WithContext(ctx).Save(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldImage)
	common.Index(ctx, h.indexer, search.FromResearch(item))
	return common.Saved(c, "Research updated successfully", item, cleanup)
}

// DeleteResearch handles DELETE /api/admin/research/:id
func (h *ResearchHandler) DeleteResearch(c *fiber.Ctx) error {
	var item model.Research
	if err := common.FindByParam(c, h.db, &item, "research"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, item.ImagePath)
	common.Unindex(ctx, h.indexer, search.KindResearch, item.ID)
	return common.Saved(c, "Research deleted successfully", nil, cleanup)
}

// ListPublicResearch handles GET /api/public/research?category=&featured=1
func (h *ResearchHandler) ListPublicResearch(c *fiber.Ctx) error {
	p := pagination.Parse(c, 10)
	query := h.db.WithContext(c.UserContext()).Model(&model.Research{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("featured") == "1" {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	items := []model.Research{}
	if err := query.Order(researchOrder).Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return err
	}

	return response.Paginated(c, items, response.CalculatePagination(p.Page, p.Limit, total))
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
