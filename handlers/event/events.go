package event

import (
	"errors"
	"time"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/dates"
	"github.com/cse-dept/cms-api/utils/pagination"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EventHandler handles department events
type EventHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
	now       func() time.Time
}

// NewEventHandler creates a new event handler. indexer may be nil.
func NewEventHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *EventHandler {
	return &EventHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateEventRequest represents the request to create an event.
// The banner arrives as the multipart file "banner".
type CreateEventRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,max=255"`
	StartsAt    string  `json:"startsAt" form:"startsAt" validate:"required"`
	EndsAt      *string `json:"endsAt" form:"endsAt"`
	Venue       string  `json:"venue" form:"venue" validate:"max=255"`
	Description string  `json:"description" form:"description"`
	Link        string  `json:"link" form:"link" validate:"omitempty,url,max=500"`
	IsPublished *bool   `json:"isPublished" form:"isPublished"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	StartsAt    *string `json:"startsAt" form:"startsAt"`
	EndsAt      *string `json:"endsAt" form:"endsAt"`
	Venue       *string `json:"venue" form:"venue" validate:"omitempty,max=255"`
	Description *string `json:"description" form:"description"`
	Link        *string `json:"link" form:"link" validate:"omitempty,url,max=500"`
	IsPublished *bool   `json:"isPublished" form:"isPublished"`
}

// ListEvents handles GET /api/admin/events
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events := []model.Event{}
	if err := h.db.WithContext(c.UserContext()).Order("starts_at DESC, id DESC").Find(&events).Error; err != nil {
		return err
	}
	return response.List(c, events)
}

// GetEvent handles GET /api/admin/events/:id
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	var ev model.Event
	if err := common.FindByParam(c, h.db, &ev, "event"); err != nil {
		return err
	}
	return response.Success(c, ev)
}

// CreateEvent handles POST /api/admin/events
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	req.Link = validation.SanitizeString(req.Link)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	startsAt, err := dates.Parse(req.StartsAt)
	if err != nil {
		return dateError(c, "startsAt")
	}
	endsAt, err := dates.ParseOptional(req.EndsAt)
	if err != nil {
		return dateError(c, "endsAt")
	}
	if endsAt != nil && endsAt.Before(startsAt) {
		return response.FieldErrors(c, []validation.FieldError{{Field: "endsAt", Message: "endsAt must not be before startsAt"}})
	}

	ctx := c.UserContext()
	bannerURL, err := h.uploads.FromForm(c, "banner", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	ev := model.Event{
		Title:       req.Title,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Venue:       validation.SanitizeString(req.Venue),
		Description: validation.SanitizeString(req.Description),
		Link:        req.Link,
		BannerPath:  bannerURL,
		IsPublished: common.BoolOr(req.IsPublished, true),
	}
	if err := h.db.WithContext(ctx).Create(&ev).Error; err != nil {
		common.Abandon(ctx, h.uploads, bannerURL)
		return err
	}

	common.Index(ctx, h.indexer, search.FromEvent(ev))
	return response.Created(c, ev)
}

// UpdateEvent handles PUT /api/admin/events/:id
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	var ev model.Event
	if err := common.FindByParam(c, h.db, &ev, "event"); err != nil {
		return err
	}

	var req UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizePtr(req.Title)
	req.Link = validation.SanitizePtr(req.Link)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.StartsAt != nil {
		startsAt, err := dates.Parse(*req.StartsAt)
		if err != nil {
			return dateError(c, "startsAt")
		}
		ev.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := dates.ParseOptional(req.EndsAt)
		if err != nil {
			return dateError(c, "endsAt")
		}
		ev.EndsAt = endsAt
	}
	if ev.EndsAt != nil && ev.EndsAt.Before(ev.StartsAt) {
		return response.FieldErrors(c, []validation.FieldError{{Field: "endsAt", Message: "endsAt must not be before startsAt"}})
	}

	ctx := c.UserContext()
	bannerURL, err := h.uploads.FromForm(c, "banner", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Venue != nil {
		ev.Venue = validation.SanitizeString(*req.Venue)
	}
	if req.Description != nil {
		ev.Description = validation.SanitizeString(*req.Description)
	}
	if req.Link != nil {
		ev.Link = *req.Link
	}
	if req.IsPublished != nil {
		ev.IsPublished = *req.IsPublished
	}

	var oldBanner string
	if bannerURL != "" {
		oldBanner = ev.BannerPath
		ev.BannerPath = bannerURL
	}

	if err := h.db.WithContext(ctx).Save(&ev).Error; err != nil {
		common.Abandon(ctx, h.uploads, bannerURL)
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldBanner)
	common.Index(ctx, h.indexer, search.FromEvent(ev))
	return common.Saved(c, "Event updated successfully", ev, cleanup)
}

// DeleteEvent handles DELETE /api/admin/events/:id
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	var ev model.Event
	if err := common.FindByParam(c, h.db, &ev, "event"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&ev).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, ev.BannerPath)
	common.Unindex(ctx, h.indexer, search.KindEvent, ev.ID)
	return common.Saved(c, "Event deleted successfully", nil, cleanup)
}

// ListPublishedEvents handles GET /api/public/events?upcoming=1|0|all.
// Upcoming events come soonest first, past and all latest first.
func (h *EventHandler) ListPublishedEvents(c *fiber.Ctx) error {
	p := pagination.Parse(c, 10)
	query := h.db.WithContext(c.UserContext()).Model(&model.Event{}).Where("is_published = ?", true)

	order := "starts_at DESC, id DESC"
	switch c.Query("upcoming", "1") {
	case "1", "true":
		query = query.Where("starts_at >= ?", h.now())
		order = "starts_at ASC, id ASC"
	case "0", "false":
		query = query.Where("starts_at < ?", h.now())
	case "all":
	default:
		return response.BadRequest(c, "upcoming must be one of 1, 0, all")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	events := []model.Event{}
	if err := query.Order(order).Offset(p.Offset()).Limit(p.Limit).Find(&events).Error; err != nil {
		return err
	}

	return response.Paginated(c, events, response.CalculatePagination(p.Page, p.Limit, total))
}

// GetPublishedEvent handles GET /api/public/events/:id
func (h *EventHandler) GetPublishedEvent(c *fiber.Ctx) error {
	eventID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var ev model.Event
	if err := h.db.WithContext(c.UserContext()).
		Where("is_published = ?", true).
		First(&ev, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return err
	}

	return response.Success(c, ev)
}

func dateError(c *fiber.Ctx, field string) error {
	return response.FieldErrors(c, []validation.FieldError{{Field: field, Message: field + " must be a date"}})
}
