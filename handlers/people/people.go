package people

import (
	"errors"
	"strings"

	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/dates"
	"github.com/cse-dept/cms-api/utils/pagination"
	dbquery "github.com/cse-dept/cms-api/utils/query"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/slug"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultDepartment is stored when a profile names no department
const DefaultDepartment = "Computer Science & Engineering"

const peopleOrder = "sort_order ASC, name ASC, id ASC"

// PeopleHandler handles faculty and staff profiles
type PeopleHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
}

// NewPeopleHandler creates a new people handler. indexer may be nil.
func NewPeopleHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *PeopleHandler {
	return &PeopleHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
	}
}

// CreatePersonRequest represents the request to create a profile.
// The photo arrives as the multipart file "photo". List fields accept a
// JSON array, or a string holding one when sent as form data.
type CreatePersonRequest struct {
	Name          string          `json:"name" form:"name" validate:"required,max=255"`
	Designation   string          `json:"designation" form:"designation" validate:"max=255"`
	Email         string          `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Phone         string          `json:"phone" form:"phone" validate:"max=50"`
	Webpage       string          `json:"webpage" form:"webpage" validate:"omitempty,url,max=500"`
	ResearchAreas string          `json:"research_areas" form:"research_areas"`
	Bio           string          `json:"bio" form:"bio"`
	JoiningDate   *string         `json:"joining_date" form:"joining_date"`
	Department    *string         `json:"department" form:"department" validate:"omitempty,max=255"`
	Education     common.JSONList `json:"education" form:"education"`
	Publications  common.JSONList `json:"publications" form:"publications"`
	Workshops     common.JSONList `json:"workshops" form:"workshops"`
	Order         *int            `json:"order" form:"order"`
}

// UpdatePersonRequest represents a partial profile update
type UpdatePersonRequest struct {
	Name          *string         `json:"name" form:"name" validate:"omitempty,min=1,max=255"`
	Designation   *string         `json:"designation" form:"designation" validate:"omitempty,max=255"`
	Email         *string         `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Phone         *string         `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Webpage       *string         `json:"webpage" form:"webpage" validate:"omitempty,url,max=500"`
	ResearchAreas *string         `json:"research_areas" form:"research_areas"`
	Bio           *string         `json:"bio" form:"bio"`
	JoiningDate   *string         `json:"joining_date" form:"joining_date"`
	Department    *string         `json:"department" form:"department" validate:"omitempty,max=255"`
	Education     common.JSONList `json:"education" form:"education"`
	Publications  common.JSONList `json:"publications" form:"publications"`
	Workshops     common.JSONList `json:"workshops" form:"workshops"`
	Order         *int            `json:"order" form:"order"`
}

// ListPeople handles GET /api/admin/people
func (h *PeopleHandler) ListPeople(c *fiber.Ctx) error {
	people := []model.People{}
	if err := h.db.WithContext(c.UserContext()).Order(peopleOrder).Find(&people).Error; err != nil {
		return err
	}
	for i := range people {
		normalize(&people[i])
	}
	return response.List(c, people)
}

// GetPerson handles GET /api/admin/people/:id
func (h *PeopleHandler) GetPerson(c *fiber.Ctx) error {
	var person model.People
	if err := common.FindByParam(c, h.db, &person, "person"); err != nil {
		return err
	}
	normalize(&person)
	return response.Success(c, person)
}

// CreatePerson handles POST /api/admin/people
func (h *PeopleHandler) CreatePerson(c *fiber.Ctx) error {
	var req CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Email = validation.SanitizeString(req.Email)
	req.Webpage = validation.SanitizeString(req.Webpage)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	joiningDate, err := dates.ParseOptional(req.JoiningDate)
	if err != nil {
		return response.FieldErrors(c, []validation.FieldError{{Field: "joining_date", Message: "joining_date must be a date"}})
	}

	ctx := c.UserContext()
	db := h.db.WithContext(ctx)

	personSlug, err := slug.Unique(slug.Generate(req.Name), slug.PeopleExists(db, 0))
	if err != nil {
		return err
	}

	photoURL, err := h.uploads.FromForm(c, "photo", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	person := model.People{
		Slug:          personSlug,
		Name:          req.Name,
		Designation:   validation.SanitizeString(req.Designation),
		Email:         req.Email,
		Phone:         validation.SanitizeString(req.Phone),
		Webpage:       req.Webpage,
		PhotoPath:     photoURL,
		ResearchAreas: validation.SanitizeString(req.ResearchAreas),
		Bio:           validation.SanitizeString(req.Bio),
		JoiningDate:   joiningDate,
		Department:    department(req.Department),
		Education:     req.Education.Value(),
		Publications:  req.Publications.Value(),
		Workshops:     req.Workshops.Value(),
		Order:         common.IntOr(req.Order, 0),
	}

	if err := db.Create(&person).Error; err != nil {
		common.Abandon(ctx, h.uploads, photoURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A person with this slug already exists", "slug")
		}
		return err
	}

	common.Index(ctx, h.indexer, search.FromPerson(person))
	return response.Created(c, person)
}

// UpdatePerson handles PUT /api/admin/people/:id. The slug is recomputed
// only when the name changes.
func (h *PeopleHandler) UpdatePerson(c *fiber.Ctx) error {
	var person model.People
	if err := common.FindByParam(c, h.db, &person, "person"); err != nil {
		return err
	}

	var req UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizePtr(req.Name)
	req.Email = validation.SanitizePtr(req.Email)
	req.Webpage = validation.SanitizePtr(req.Webpage)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ctx := c.UserContext()
	db := h.db.WithContext(ctx)

	if req.JoiningDate != nil {
		joiningDate, err := dates.ParseOptional(req.JoiningDate)
		if err != nil {
			return response.FieldErrors(c, []validation.FieldError{{Field: "joining_date", Message: "joining_date must be a date"}})
		}
		person.JoiningDate = joiningDate
	}

	if req.Name != nil && *req.Name != person.Name {
		personSlug, err := slug.Unique(slug.Generate(*req.Name), slug.PeopleExists(db, person.ID))
		if err != nil {
			return err
		}
		person.Name = *req.Name
		person.Slug = personSlug
	}

	photoURL, err := h.uploads.FromForm(c, "photo", storage.KindImage)
	if err != nil {
		return uploads.Respond(c, err)
	}

	applyString(&person.Designation, req.Designation)
	applyString(&person.Email, req.Email)
	applyString(&person.Phone, req.Phone)
	applyString(&person.Webpage, req.Webpage)
	applyString(&person.ResearchAreas, req.ResearchAreas)
	applyString(&person.Bio, req.Bio)
	if req.Department != nil {
		person.Department = department(req.Department)
	}
	applyList(&person.Education, req.Education)
	applyList(&person.Publications, req.Publications)
	applyList(&person.Workshops, req.Workshops)
	if req.Order != nil {
		person.Order = *req.Order
	}

	var oldPhoto string
	if photoURL != "" {
		oldPhoto = person.PhotoPath
		person.PhotoPath = photoURL
	}

	if err := db.Save(&person).Error; err != nil {
		common.Abandon(ctx, h.uploads, photoURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A person with this slug already exists", "slug")
		}
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, oldPhoto)
	common.Index(ctx, h.indexer, search.FromPerson(person))

	normalize(&person)
	return common.Saved(c, "Person updated successfully", person, cleanup)
}

// DeletePerson handles DELETE /api/admin/people/:id
func (h *PeopleHandler) DeletePerson(c *fiber.Ctx) error {
	var person model.People
	if err := common.FindByParam(c, h.db, &person, "person"); err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.db.WithContext(ctx).Delete(&person).Error; err != nil {
		return err
	}

	cleanup := common.Discard(ctx, h.uploads, person.PhotoPath)
	common.Unindex(ctx, h.indexer, search.KindPerson, person.ID)

	return common.Saved(c, "Person deleted successfully", nil, cleanup)
}

// ListPublicPeople handles GET /api/public/people?designation=&area=&q=
func (h *PeopleHandler) ListPublicPeople(c *fiber.Ctx) error {
	p := pagination.Parse(c, 20)

	query := h.db.WithContext(c.UserContext()).Model(&model.People{})
	if designation := strings.TrimSpace(c.Query("designation")); designation != "" {
		query = dbquery.Contains(query, designation, "designation")
	}
	if area := strings.TrimSpace(c.Query("area")); area != "" {
		query = dbquery.Contains(query, area, "research_areas")
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = dbquery.Contains(query, q, "name", "designation", "research_areas")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	people := []model.People{}
	if err := query.Order(peopleOrder).
		Offset(p.Offset()).Limit(p.Limit).
		Find(&people).Error; err != nil {
		return err
	}
	for i := range people {
		normalize(&people[i])
	}

	return response.Paginated(c, people, response.CalculatePagination(p.Page, p.Limit, total))
}

// GetPersonBySlug handles GET /api/public/people/:slug
func (h *PeopleHandler) GetPersonBySlug(c *fiber.Ctx) error {
	var person model.People
	if err := h.db.WithContext(c.UserContext()).
		Where("slug = ?", c.Params("slug")).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty member not found")
		}
		return err
	}

	normalize(&person)
	return response.Success(c, person)
}

func department(p *string) string {
	if p == nil {
		return DefaultDepartment
	}
	if d := validation.SanitizeString(*p); d != "" {
		return d
	}
	return DefaultDepartment
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = validation.SanitizeString(*src)
	}
}

func applyList(dst *datatypes.JSON, src common.JSONList) {
	if src.Set {
		*dst = src.Value()
	}
}

// normalize renders unset list columns as []
func normalize(p *model.People) {
	for _, field := range []*datatypes.JSON{&p.Education, &p.Publications, &p.Workshops} {
		if len(*field) == 0 || string(*field) == "null" {
			*field = datatypes.JSON("[]")
		}
	}
}
