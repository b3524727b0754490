// Package program serves the program hierarchy: programs, their sections,
// curriculum semesters and courses, outcomes, and section content.
package program

import (
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/validation"
	"gorm.io/gorm"
)

// ProgramHandler handles program and curriculum requests
type ProgramHandler struct {
	db        *gorm.DB
	uploads   *uploads.Service
	indexer   search.Indexer
	validator *validation.Validator
}

// NewProgramHandler creates a new program handler. indexer may be nil.
func NewProgramHandler(db *gorm.DB, uploadSvc *uploads.Service, indexer search.Indexer) *ProgramHandler {
	return &ProgramHandler{
		db:        db,
		uploads:   uploadSvc,
		indexer:   indexer,
		validator: validation.NewValidator(),
	}
}

// CreateProgramRequest represents the request to create a program.
// The curriculum PDF arrives as the multipart file "curriculum".
type CreateProgramRequest struct {
	Name         string `json:"name" form:"name" validate:"required,max=255"`
	ShortName    string `json:"short_name" form:"short_name" validate:"max=20"`
	Level        string `json:"level" form:"level" validate:"required,oneof=UG PG PhD"`
	Description  string `json:"description" form:"description"`
	Overview     string `json:"overview" form:"overview"`
	Duration     string `json:"duration" form:"duration" validate:"max=50"`
	TotalCredits *int   `json:"total_credits" form:"total_credits" validate:"omitempty,gte=0"`
	DisplayOrder *int   `json:"display_order" form:"display_order"`
}

// UpdateProgramRequest represents a partial program update
type UpdateProgramRequest struct {
	Name         *string `json:"name" form:"name" validate:"omitempty,min=1,max=255"`
	ShortName    *string `json:"short_name" form:"short_name" validate:"omitempty,max=20"`
	Level        *string `json:"level" form:"level" validate:"omitempty,oneof=UG PG PhD"`
	Description  *string `json:"description" form:"description"`
	Overview     *string `json:"overview" form:"overview"`
	Duration     *string `json:"duration" form:"duration" validate:"omitempty,max=50"`
	TotalCredits *int    `json:"total_credits" form:"total_credits" validate:"omitempty,gte=0"`
	DisplayOrder *int    `json:"display_order" form:"display_order"`
}

// CreateSectionRequest represents the request to add a section to a program
type CreateSectionRequest struct {
	Title        string `json:"title" form:"title" validate:"required,max=255"`
	SectionType  string `json:"section_type" form:"section_type" validate:"required,oneof=curriculum info outcome overview"`
	DisplayOrder *int   `json:"display_order" form:"display_order"`
	IsExpanded   *bool  `json:"is_expanded" form:"is_expanded"`
}

// UpdateSectionRequest represents a partial section update
type UpdateSectionRequest struct {
	Title        *string `json:"title" form:"title" validate:"omitempty,min=1,max=255"`
	SectionType  *string `json:"section_type" form:"section_type" validate:"omitempty,oneof=curriculum info outcome overview"`
	DisplayOrder *int    `json:"display_order" form:"display_order"`
	IsExpanded   *bool   `json:"is_expanded" form:"is_expanded"`
}

// UpsertContentRequest sets the rich text body of a section
type UpsertContentRequest struct {
	SectionID   uint   `json:"section_id" form:"section_id" validate:"required"`
	ContentHTML string `json:"content_html" form:"content_html"`
}

// CreateSemesterRequest represents the request to add a semester to a section
type CreateSemesterRequest struct {
	SemesterNumber int    `json:"semester_number" form:"semester_number" validate:"required,gte=1,lte=20"`
	SemesterName   string `json:"semester_name" form:"semester_name" validate:"max=100"`
	DisplayOrder   *int   `json:"display_order" form:"display_order"`
}

// UpdateSemesterRequest represents a partial semester update
type UpdateSemesterRequest struct {
	SemesterNumber *int    `json:"semester_number" form:"semester_number" validate:"omitempty,gte=1,lte=20"`
	SemesterName   *string `json:"semester_name" form:"semester_name" validate:"omitempty,max=100"`
	DisplayOrder   *int    `json:"display_order" form:"display_order"`
}

// CreateCourseRequest represents the request to add a course to a semester
type CreateCourseRequest struct {
	CourseName     string   `json:"course_name" form:"course_name" validate:"required,max=255"`
	CourseType     string   `json:"course_type" form:"course_type" validate:"max=10"`
	TheoryHours    int      `json:"theory_hours" form:"theory_hours" validate:"gte=0"`
	LabHours       int      `json:"lab_hours" form:"lab_hours" validate:"gte=0"`
	TutorialHours  int      `json:"tutorial_hours" form:"tutorial_hours" validate:"gte=0"`
	PracticalHours int      `json:"practical_hours" form:"practical_hours" validate:"gte=0"`
	Credits        *float64 `json:"credits" form:"credits" validate:"required,gte=0"`
	DisplayOrder   *int     `json:"display_order" form:"display_order"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	CourseName     *string  `json:"course_name" form:"course_name" validate:"omitempty,min=1,max=255"`
	CourseType     *string  `json:"course_type" form:"course_type" validate:"omitempty,max=10"`
	TheoryHours    *int     `json:"theory_hours" form:"theory_hours" validate:"omitempty,gte=0"`
	LabHours       *int     `json:"lab_hours" form:"lab_hours" validate:"omitempty,gte=0"`
	TutorialHours  *int     `json:"tutorial_hours" form:"tutorial_hours" validate:"omitempty,gte=0"`
	PracticalHours *int     `json:"practical_hours" form:"practical_hours" validate:"omitempty,gte=0"`
	Credits        *float64 `json:"credits" form:"credits" validate:"omitempty,gte=0"`
	DisplayOrder   *int     `json:"display_order" form:"display_order"`
}

// CreateOutcomeRequest represents the request to add an outcome to a section
type CreateOutcomeRequest struct {
	OutcomeCode  string `json:"outcome_code" form:"outcome_code" validate:"required,max=20"`
	OutcomeText  string `json:"outcome_text" form:"outcome_text" validate:"required"`
	DisplayOrder *int   `json:"display_order" form:"display_order"`
}

// UpdateOutcomeRequest represents a partial outcome update
type UpdateOutcomeRequest struct {
	OutcomeCode  *string `json:"outcome_code" form:"outcome_code" validate:"omitempty,min=1,max=20"`
	OutcomeText  *string `json:"outcome_text" form:"outcome_text" validate:"omitempty,min=1"`
	DisplayOrder *int    `json:"display_order" form:"display_order"`
}
