package news

import (
	"errors"
	"time"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/dates"
	"github.com/cse-dept/cms-api/utils/htmlsanitize"
	"github.com/cse-dept/cms-api/utils/pagination"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const newsOrder = "date DESC, id DESC"

// NewsHandler handles department news
type NewsHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
}

// NewNewsHandler creates a new news handler. indexer may be nil.
func NewNewsHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *NewsHandler {
	return &NewsHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
	}
}

// CreateNewsRequest represents the request to create a news item.
// Date defaults to now; the image arrives as the multipart file "image".
type CreateNewsRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,max=255"`
	Date        *string `json:"date" form:"date"`
	Summary     string  `json:"summary" form:"summary"`
	Body        string  `json:"body" form:"body"`
	IsPublished *bool   `json:"isPublished" form:"isPublished"`
}

// UpdateNewsRequest represents a partial news update
type UpdateNewsRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	Date        *string `json:"date" form:"date"`
	Summary     *string `json:"summary" form:"summary"`
	Body        *string `json:"body" form:"body"`
	IsPublished *bool   `json:"isPublished" form:"isPublished"`
}

// ListNews handles GET /api/admin/news
func (h *NewsHandler) ListNews(c *fiber.Ctx) error {
	items := []model.News{}
	if err := h.db.WithContext(c.UserContext()).Order(newsOrder).Find(&items).Error; err != nil {
		return err
	}
	return response.List(c, items)
}

// GetNews handles GET /api/admin/news/:id
func (h *NewsHandler) GetNews(c *fiber.Ctx) error {
	var item model.News
	if err := common.FindByParam(c, h.db, &item, "news"); err != nil {
		return err
	}
	return response.Success(c, item)
}

// CreateNews handles POST /api/admin/news
func (h *NewsHandler) CreateNews(c *fiber.Ctx) error {
	var req CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	date := time.Now().UTC()
	if parsed, err := dates.ParseOptional(req.Date); err != nil {
		return response.FieldErrors(c, []validation.FieldError{{Field: "date", Message: "date must be a date"}})
	} else if parsed != nil {
		date = *parsed
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	item := model.News{
		Title:       req.Title,
		Date:        date,
		Summary:     validation.SanitizeString(req.Summary),
		Body:        htmlsanitize.Sanitize(req.Body),
		ImagePath:   imageURL,
		IsPublished: common.BoolOr(req.IsPublished, true),
	}
	if err := h.db.WithContext(ctx).Create(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	common.Index(ctx, h.indexer, search.FromNews(item))
	return response.Created(c, item)
}

// UpdateNews handles PUT /api/admin/news/:id
func (h *NewsHandler) UpdateNews(c *fiber.Ctx) error {
	var item model.News
	if err := common.FindByParam(c, h.db, &item, "news"); err != nil {
		return err
	}

	var req UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizePtr(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Date != nil {
		parsed, err := dates.ParseOptional(req.Date)
		if err != nil || parsed == nil {
			return response.FieldErrors(c, []validation.FieldError{{Field: "date", Message: "date must be a date"}})
		}
		item.Date = *parsed
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Summary != nil {
		item.Summary = validation.SanitizeString(*req.Summary)
	}
	if req.Body != nil {
		item.Body = htmlsanitize.Sanitize(*req.Body)
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
	common.Index(ctx, h.indexer, search.FromNews(item))
	return common.Saved(c, "News updated successfully", item, cleanup)
}

// DeleteNews handles DELETE /api/admin/news/:id
func (h *NewsHandler) DeleteNews(c *fiber.Ctx) error {
	var item model.News
	if err := common.FindByParam(c, h.db, &item, "news"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, item.ImagePath)
	common.Unindex(ctx, h.indexer, search.KindNews, item.ID)
	return common.Saved(c, "News deleted successfully", nil, cleanup)
}

// ListPublishedNews handles GET /api/public/news
func (h *NewsHandler) ListPublishedNews(c *fiber.Ctx) error {
	p := pagination.Parse(c, 10)
	query := h.db.WithContext(c.UserContext()).Model(&model.News{}).Where("is_published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	items := []model.News{}
	if err := query.Order(newsOrder).Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return err
	}

	return response.Paginated(c, items, response.CalculatePagination(p.Page, p.Limit, total))
}

// GetPublishedNews handles GET /api/public/news/:id
func (h *NewsHandler) GetPublishedNews(c *fiber.Ctx) error {
	newsID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid news ID")
	}

	var item model.News
	if err := h.db.WithContext(c.UserContext()).
		Where("is_published = ?", true).
		First(&item, newsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "News not found")
		}
		return err
	}

	return response.Success(c, item)
}
