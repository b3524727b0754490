package facility

import (
	"errors"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/pagination"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const facilityOrder = "display_order ASC, id ASC"

// FacilityHandler handles labs, equipment and infrastructure listings
type FacilityHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
}

// NewFacilityHandler creates a new facility handler. indexer may be nil.
func NewFacilityHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *FacilityHandler {
	return &FacilityHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
	}
}

// CreateFacilityRequest represents the request to create a facility.
// gallery_images is a JSON array of image URLs.
type CreateFacilityRequest struct {
	Name           string          `json:"name" form:"name" validate:"required,max=255"`
	Category       string          `json:"category" form:"category" validate:"omitempty,oneof=Laboratory Infrastructure Equipment Software Other"`
	Description    string          `json:"description" form:"description"`
	Specifications string          `json:"specifications" form:"specifications"`
	Location       string          `json:"location" form:"location" validate:"max=255"`
	Capacity       *int            `json:"capacity" form:"capacity" validate:"omitempty,gte=0"`
	InCharge       string          `json:"in_charge" form:"in_charge" validate:"max=255"`
	GalleryImages  common.JSONList `json:"gallery_images" form:"gallery_images"`
	DisplayOrder   *int            `json:"display_order" form:"display_order"`
	IsActive       *bool           `json:"is_active" form:"is_active"`
}

// UpdateFacilityRequest represents a partial facility update
type UpdateFacilityRequest struct {
	Name           *string         `json:"name" form:"name" validate:"omitempty,min=1,max=255"`
	Category       *string         `json:"category" form:"category" validate:"omitempty,oneof=Laboratory Infrastructure Equipment Software Other"`
	Description    *string         `json:"description" form:"description"`
	Specifications *string         `json:"specifications" form:"specifications"`
	Location       *string         `json:"location" form:"location" validate:"omitempty,max=255"`
	Capacity       *int            `json:"capacity" form:"capacity" validate:"omitempty,gte=0"`
	InCharge       *string         `json:"in_charge" form:"in_charge" validate:"omitempty,max=255"`
	GalleryImages  common.JSONList `json:"gallery_images" form:"gallery_images"`
	DisplayOrder   *int            `json:"display_order" form:"display_order"`
	IsActive       *bool           `json:"is_active" form:"is_active"`
}

// ListFacilities handles GET /api/admin/facilities
func (h *FacilityHandler) ListFacilities(c *fiber.Ctx) error {
	items := []model.Facility{}
	if err := h.db.WithContext(c.UserContext()).Order(facilityOrder).Find(&items).Error; err != nil {
		return err
	}
	for i := range items {
		normalize(&items[i])
	}
	return response.List(c, items)
}

// GetFacility handles GET /api/admin/facilities/:id
func (h *FacilityHandler) GetFacility(c *fiber.Ctx) error {
	var item model.Facility
	if err := common.FindByParam(c, h.db, &item, "facility"); err != nil {
		return err
	}
	normalize(&item)
	return response.Success(c, item)
}

// CreateFacility handles POST /api/admin/facilities
func (h *FacilityHandler) CreateFacility(c *fiber.Ctx) error {
	var req CreateFacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = validation.SanitizeString(req.Name)
	req.Category = validation.SanitizeString(req.Category)
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
		category = model.FacilityLaboratory
	}

	item := model.Facility{
		Name:           req.Name,
		Category:       category,
		Description:    validation.SanitizeString(req.Description),
		Specifications: validation.SanitizeString(req.Specifications),
		Location:       validation.SanitizeString(req.Location),
		Capacity:       req.Capacity,
		InCharge:       validation.SanitizeString(req.InCharge),
		ImagePath:      imageURL,
		GalleryImages:  req.GalleryImages.Value(),
		DisplayOrder:   common.IntOr(req.DisplayOrder, 0),
		IsActive:       common.BoolOr(req.IsActive, true),
	}
	if err := h.db.WithContext(ctx).Create(&item).Error; err != nil {
		common.Abandon(ctx, h.uploads, imageURL)
		return err
	}

	common.Index(ctx, h.indexer, search.FromFacility(item))
	return response.Created(c, item)
}

// UpdateFacility handles PUT /api/admin/facilities/:id
func (h *FacilityHandler) UpdateFacility(c *fiber.Ctx) error {
	var item model.Facility
	if err := common.FindByParam(c, h.db, &item, "facility"); err != nil {
		return err
	}

	var req UpdateFacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = validation.SanitizePtr(req.Name)
	req.Category = validation.SanitizePtr(req.Category)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	imageURL, err := h.uploads.FromForm(c, "image", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil && *req.Category != "" {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = validation.SanitizeString(*req.Description)
	}
	if req.Specifications != nil {
		item.Specifications = validation.SanitizeString(*req.Specifications)
	}
	if req.Location != nil {
		item.Location = validation.SanitizeString(*req.Location)
	}
	if req.Capacity != nil {
		item.Capacity = req.Capacity
	}
	if req.InCharge != nil {
		item.InCharge = validation.SanitizeString(*req.InCharge)
	}
	if req.GalleryImages.Set {
		item.GalleryImages = req.GalleryImages.Value()
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
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
	common.Index(ctx, h.indexer, search.FromFacility(item))

	normalize(&item)
	return common.Saved(c, "Facility updated successfully", item, cleanup)
}

// DeleteFacility handles DELETE /api/admin/facilities/:id
func (h *FacilityHandler) DeleteFacility(c *fiber.Ctx) error {
	var item model.Facility
	if err := common.FindByParam(c, h.db, &item, "facility"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, item.ImagePath)
	common.Unindex(ctx, h.indexer, search.KindFacility, item.ID)
	return common.Saved(c, "Facility deleted successfully", nil, cleanup)
}

// ListPublicFacilities handles GET /api/public/facilities?category=
func (h *FacilityHandler) ListPublicFacilities(c *fiber.Ctx) error {
	p := pagination.Parse(c, 12)
	query := h.db.WithContext(c.UserContext()).Model(&model.Facility{}).Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	items := []model.Facility{}
	if err := query.Order(facilityOrder).Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return err
	}
	for i := range items {
		normalize(&items[i])
	}

	return response.Paginated(c, items, response.CalculatePagination(p.Page, p.Limit, total))
}

// GetPublicFacility handles GET /api/public/facilities/:id
func (h *FacilityHandler) GetPublicFacility(c *fiber.Ctx) error {
	facilityID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid facility ID")
	}

	var item model.Facility
	if err := h.db.WithContext(c.UserContext()).
		Where("is_active = ?", true).
		First(&item, facilityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Facility not found")
		}
		return err
	}

	normalize(&item)
	return response.Success(c, item)
}

func normalize(f *model.Facility) {
	if len(f.GalleryImages) == 0 || string(f.GalleryImages) == "null" {
		f.GalleryImages = datatypes.JSON("[]")
	}
}
