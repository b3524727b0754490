package infoblock

import (
	"errors"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/htmlsanitize"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const duplicateKeyMessage = "An info block with this key already exists"

// InfoBlockHandler handles keyed static content blocks
type InfoBlockHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	validator *validation.Validator
}

// NewInfoBlockHandler creates a new info block handler
func NewInfoBlockHandler(db *gorm.DB, uploadSvc *uploads.Service) *InfoBlockHandler {
	return &InfoBlockHandler{
		db:        db,
		uploads:   uploadSvc,
		validator: validation.NewValidator(),
	}
}

// CreateInfoBlockRequest represents the request to create an info block.
// Media arrives as the multipart image "media".
type CreateInfoBlockRequest struct {
	Key   string `json:"key" form:"key" validate:"required,max=100"`
	Title string `json:"title" form:"title" validate:"max=255"`
	Body  string `json:"body" form:"body"`
}

// UpdateInfoBlockRequest represents a partial info block update
type UpdateInfoBlockRequest struct {
	Key   *string `json:"key" form:"key" validate:"omitempty,min=1,max=100"`
	Title *string `json:"title" form:"title" validate:"omitempty,max=255"`
	Body  *string `json:"body" form:"body"`
}

// ListInfoBlocks handles GET /api/admin/info-blocks
func (h *InfoBlockHandler) ListInfoBlocks(c *fiber.Ctx) error {
	blocks := []model.InfoBlock{}
	if err := h.db.WithContext(c.UserContext()).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&blocks).Error; err != nil {
		return err
	}
	return response.List(c, blocks)
}

// GetInfoBlock handles GET /api/admin/info-blocks/:id
func (h *InfoBlockHandler) GetInfoBlock(c *fiber.Ctx) error {
	var block model.InfoBlock
	if err := common.FindByParam(c, h.db, &block, "info block"); err != nil {
		return err
	}
	return response.Success(c, block)
}

// GetInfoBlockByKey handles GET /api/public/info/:key
func (h *InfoBlockHandler) GetInfoBlockByKey(c *fiber.Ctx) error {
	var block model.InfoBlock
	if err := h.db.WithContext(c.UserContext()).Where(&model.InfoBlock{Key: c.Params("key")}).First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Info block not found")
		}
		return err
	}
	return response.Success(c, block)
}

// CreateInfoBlock handles POST /api/admin/info-blocks
func (h *InfoBlockHandler) CreateInfoBlock(c *fiber.Ctx) error {
	var req CreateInfoBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Key = validation.SanitizeString(req.Key)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	db := h.db.WithContext(ctx)

	taken, err := h.keyTaken(db, req.Key, 0)
	if err != nil {
		return err
	}
	if taken {
		return response.Conflict(c, duplicateKeyMessage, "key")
	}

	mediaURL, err := h.uploads.FromForm(c, "media", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	block := model.InfoBlock{
		Key:       req.Key,
		Title:     validation.SanitizeString(req.Title),
		Body:      htmlsanitize.Sanitize(req.Body),
		MediaPath: mediaURL,
	}
	if err := db.Create(&block).Error; err != nil {
		common.Abandon(ctx, h.uploads, mediaURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, duplicateKeyMessage, "key")
		}
		return err
	}

	return response.Created(c, block)
}

// UpdateInfoBlock handles PUT /api/admin/info-blocks/:id
func (h *InfoBlockHandler) UpdateInfoBlock(c *fiber.Ctx) error {
	var block model.InfoBlock
	if err := common.FindByParam(c, h.db, &block, "info block"); err != nil {
		return err
	}

	var req UpdateInfoBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Key = validation.SanitizePtr(req.Key)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	db := h.db.WithContext(ctx)

	if req.Key != nil && *req.Key != block.Key {
		taken, err := h.keyTaken(db, *req.Key, block.ID)
		if err != nil {
			return err
		}
		if taken {
			return response.Conflict(c, duplicateKeyMessage, "key")
		}
		block.Key = *req.Key
	}

	mediaURL, err := h.uploads.FromForm(c, "media", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Title != nil {
		block.Title = validation.SanitizeString(*req.Title)
	}
	if req.Body != nil {
		block.Body = htmlsanitize.Sanitize(*req.Body)
	}

	var oldMedia string
	if mediaURL != "" {
		oldMedia = block.MediaPath
		block.MediaPath = mediaURL
	}

	if err := db.Save(&block).Error; err != nil {
		common.Abandon(ctx, h.uploads, mediaURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, duplicateKeyMessage, "key")
		}
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldMedia)
	return common.Saved(c, "Info block updated successfully", block, cleanup)
}

// DeleteInfoBlock handles DELETE /api/admin/info-blocks/:id
func (h *InfoBlockHandler) DeleteInfoBlock(c *fiber.Ctx) error {
	var block model.InfoBlock
	if err := common.FindByParam(c, h.db, &block, "info block"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&block).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, block.MediaPath)
	return common.Saved(c, "Info block deleted successfully", nil, cleanup)
}

func (h *InfoBlockHandler) keyTaken(db *gorm.DB, key string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(&model.InfoBlock{}).Where(&model.InfoBlock{Key: key})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
