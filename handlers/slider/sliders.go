package slider

import (
	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const sliderOrder = "sort_order ASC, id ASC"

// SliderHandler handles homepage carousel requests
type SliderHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	validator *validation.Validator
}

// NewSliderHandler creates a new slider handler
func NewSliderHandler(db *gorm.DB, uploadSvc *uploads.Service) *SliderHandler {
	return &SliderHandler{
		db:        db,
		uploads:   uploadSvc,
		validator: validation.NewValidator(),
	}
}

// SliderRequest is the body of slider create and update requests.
// The image arrives as the multipart file "image".
type SliderRequest struct {
	Caption  *string `json:"caption" form:"caption" validate:"omitempty,max=255"`
	Order    *int    `json:"order" form:"order"`
	IsActive *bool   `json:"isActive" form:"isActive"`
}

// ListSliders handles GET /api/admin/sliders
func (h *SliderHandler) ListSliders(c *fiber.Ctx) error {
	sliders := []model.Slider{}
	if err := h.db.WithContext(c.UserContext()).Order(sliderOrder).Find(&sliders).Error; err != nil {
		return err
	}
	return response.List(c, sliders)
}

// ListActiveSliders handles GET /api/public/sliders
func (h *SliderHandler) ListActiveSliders(c *fiber.Ctx) error {
	sliders := []model.Slider{}
	if err := h.db.WithContext(c.UserContext()).
		Where("is_active = ?", true).
		Order(sliderOrder).
		Find(&sliders).Error; err != nil {
		return err
	}
	return response.List(c, sliders)
}

// GetSlider handles GET /api/admin/sliders/:id
func (h *SliderHandler) GetSlider(c *fiber.Ctx) error {
	slider, err := h.find(c)
	if err != nil {
		return err
	}
	return response.Success(c, slider)
}

// CreateSlider handles POST /api/admin/sliders
func (h *SliderHandler) CreateSlider(c *fiber.Ctx) error {
	var req SliderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Caption = validation.SanitizePtr(req.Caption)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}
	if imageURL == "" {
		return response.FieldErrors(c, []validation.FieldError{{Field: "image", Message: "Image is required"}})
	}

	slider := model.Slider{
		ImagePath: imageURL,
		Caption:   common.StringOr(req.Caption, ""),
		Order:     common.IntOr(req.Order, 0),
		IsActive:  common.BoolOr(req.IsActive, true),
	}
	if err := h.db.WithContext(ctx).Create(&slider).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	return response.Created(c, slider)
}

// UpdateSlider handles PUT /api/admin/sliders/:id
func (h *SliderHandler) UpdateSlider(c *fiber.Ctx) error {
	slider, err := h.find(c)
	if err != nil {
		return err
	}

	var req SliderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Caption = validation.SanitizePtr(req.Caption)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Caption != nil {
		slider.Caption = *req.Caption
	}
	if req.Order != nil {
		slider.Order = *req.Order
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}

	var oldImage string
	if imageURL != "" {
		oldImage = slider.ImagePath
		slider.ImagePath = imageURL
	}

	if err := h.db.WithContext(ctx).Save(slider).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldImage)
	return common.Saved(c, "Slider updated successfully", slider, cleanup)
}

// DeleteSlider handles DELETE /api/admin/sliders/:id
func (h *SliderHandler) DeleteSlider(c *fiber.Ctx) error {
	slider, err := h.find(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(slider).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, slider.ImagePath)
	return common.Saved(c, "Slider deleted successfully", nil, cleanup)
}

// find loads the slider named by :id
func (h *SliderHandler) find(c *fiber.Ctx) (*model.Slider, error) {
	var slider model.Slider
	if err := common.FindByParam(c, h.db, &slider, "slider"); err != nil {
		return nil, err
	}
	return &slider, nil
}
