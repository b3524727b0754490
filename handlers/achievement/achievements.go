package achievement

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

const achievementOrder = "created_at DESC, id DESC"

// AchievementHandler handles student and faculty achievements
type AchievementHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
}

// NewAchievementHandler creates a new achievement handler. indexer may be nil.
func NewAchievementHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *AchievementHandler {
	return &AchievementHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
	}
}

// CreateAchievementRequest represents the request to create an achievement
type CreateAchievementRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	Students    string `json:"students" form:"students"`
	Description string `json:"description" form:"description"`
	Link        string `json:"link" form:"link" validate:"omitempty,url,max=500"`
	IsPublished *bool  `json:"isPublished" form:"isPublished"`
}

// UpdateAchievementRequest represents a partial achievement update
type UpdateAchievementRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	Students    *string `json:"students" form:"students"`
	Description *string `json:"description" form:"description"`
	Link        *string `json:"link" form:"link" validate:"omitempty,url,max=500"`
	IsPublished *bool   `json:"isPublished" form:"isPublished"`
}

// ListAchievements handles GET /api/admin/achievements
func (h *AchievementHandler) ListAchievements(c *fiber.Ctx) error {
	items := []model.Achievement{}
	if err := h.db.WithContext(c.UserContext()).Order(achievementOrder).Find(&items).Error; err != nil {
		return err
	}
	return response.List(c, items)
}

// GetAchievement handles GET /api/admin/achievements/:id
func (h *AchievementHandler) GetAchievement(c *fiber.Ctx) error {
	var item model.Achievement
	if err := common.FindByParam(c, h.db, &item, "achievement"); err != nil {
		return err
	}
	return response.Success(c, item)
}

// CreateAchievement handles POST /api/admin/achievements
func (h *AchievementHandler) CreateAchievement(c *fiber.Ctx) error {
	var req CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	req.Link = validation.SanitizeString(req.Link)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	item := model.Achievement{
		Title:       req.Title,
		Students:    validation.SanitizeString(req.Students),
		Description: validation.SanitizeString(req.Description),
		Link:        req.Link,
		ImagePath:   imageURL,
		IsPublished: common.BoolOr(req.IsPublished, true),
	}
	if err := h.db.WithContext(ctx).Create(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	common.Index(ctx, h.indexer, search.FromAchievement(item))
	return response.Created(c, item)
}

// UpdateAchievement handles PUT /api/admin/achievements/:id
func (h *AchievementHandler) UpdateAchievement(c *fiber.Ctx) error {
	var item model.Achievement
	if err := common.FindByParam(c, h.db, &item, "achievement"); err != nil {
		return err
	}

	var req UpdateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizePtr(req.Title)
	req.Link = validation.SanitizePtr(req.Link)
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
	if req.Students != nil {
		item.Students = validation.SanitizeString(*req.Students)
	}
	if req.Description != nil {
		item.Description = validation.SanitizeString(*req.Description)
	}
	if req.Link != nil {
		item.Link = *req.Link
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
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
	common.Index(ctx, h.indexer, search.FromAchievement(item))
	return common.Saved(c, "Achievement updated successfully", item, cleanup)
}

// DeleteAchievement handles DELETE /api/admin/achievements/:id
func (h *AchievementHandler) DeleteAchievement(c *fiber.Ctx) error {
	var item model.Achievement
	if err := common.FindByParam(c, h.db, &item, "achievement"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, item.ImagePath)
	common.Unindex(ctx, h.indexer, search.KindAchievement, item.ID)
	return common.Saved(c, "Achievement deleted successfully", nil, cleanup)
}

// ListPublishedAchievements handles GET /api/public/achievements
func (h *AchievementHandler) ListPublishedAchievements(c *fiber.Ctx) error {
	p := pagination.Parse(c, 12)
	query := h.db.WithContext(c.UserContext()).Model(&model.Achievement{}).Where("is_published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	items := []model.Achievement{}
	if err := query.Order(achievementOrder).Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return err
	}

	return response.Paginated(c, items, response.CalculatePagination(p.Page, p.Limit, total))
}
