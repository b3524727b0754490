package program

import (
	"time"

	"github.com/cse-dept/cms-api/model"
	"gorm.io/gorm"
)

// ProgramSummary is a program without its sections
type ProgramSummary struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	ShortName         string    `json:"short_name"`
	Level             string    `json:"level"`
	Description       string    `json:"description"`
	Overview          string    `json:"overview"`
	Duration          string    `json:"duration"`
	TotalCredits      *int      `json:"total_credits"`
	CurriculumPDFPath *string   `json:"curriculum_pdf_path"`
	DisplayOrder      int       `json:"display_order"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProgramDetail is a program with its whole section tree. Absent
// associations render as [] and a missing content row as null.
type ProgramDetail struct {
	ProgramSummary
	Sections []SectionDetail `json:"sections"`
}

// SectionDetail is one section with its children
type SectionDetail struct {
	ID           uint             `json:"id"`
	ProgramID    uint             `json:"program_id"`
	Title        string           `json:"title"`
	SectionType  string           `json:"section_type"`
	DisplayOrder int              `json:"display_order"`
	IsExpanded   bool             `json:"is_expanded"`
	Content      *ContentDetail   `json:"content"`
	Outcomes     []OutcomeDetail  `json:"outcomes"`
	Semesters    []SemesterDetail `json:"semesters"`
}

type ContentDetail struct {
	ID          uint      `json:"id"`
	SectionID   uint      `json:"section_id"`
	ContentHTML string    `json:"content_html"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OutcomeDetail struct {
	ID           uint   `json:"id"`
	SectionID    uint   `json:"section_id"`
	OutcomeCode  string `json:"outcome_code"`
	OutcomeText  string `json:"outcome_text"`
	DisplayOrder int    `json:"display_order"`
}

type SemesterDetail struct {
	ID             uint           `json:"id"`
	SectionID      uint           `json:"section_id"`
	SemesterNumber int            `json:"semester_number"`
	SemesterName   string         `json:"semester_name"`
	DisplayOrder   int            `json:"display_order"`
	Courses        []CourseDetail `json:"courses"`
}

type CourseDetail struct {
	ID             uint    `json:"id"`
	SemesterID     uint    `json:"semester_id"`
	CourseName     string  `json:"course_name"`
	CourseType     string  `json:"course_type"`
	TheoryHours    int     `json:"theory_hours"`
	LabHours       int     `json:"lab_hours"`
	TutorialHours  int     `json:"tutorial_hours"`
	PracticalHours int     `json:"practical_hours"`
	Credits        float64 `json:"credits"`
	DisplayOrder   int     `json:"display_order"`
}

func byDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, id ASC")
}

// withTree preloads every level of the program hierarchy in display order
func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", byDisplayOrder).
		Preload("Sections.Semesters", byDisplayOrder).
		Preload("Sections.Semesters.Courses", byDisplayOrder).
		Preload("Sections.Outcomes", byDisplayOrder).
		Preload("Sections.Content")
}

// withSectionTree is withTree rooted at a section
func withSectionTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Semesters", byDisplayOrder).
		Preload("Semesters.Courses", byDisplayOrder).
		Preload("Outcomes", byDisplayOrder).
		Preload("Content")
}

func toSummary(p *model.Program) ProgramSummary {
	return ProgramSummary{
		ID:                p.ID,
		Name:              p.Name,
		ShortName:         p.ShortName,
		Level:             p.Level,
		Description:       p.Description,
		Overview:          p.Overview,
		Duration:          p.Duration,
		TotalCredits:      p.TotalCredits,
		CurriculumPDFPath: p.CurriculumPDFPath,
		DisplayOrder:      p.DisplayOrder,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toDetail(p *model.Program) ProgramDetail {
	sections := make([]SectionDetail, 0, len(p.Sections))
	for i := range p.Sections {
		sections = append(sections, toSectionDetail(&p.Sections[i]))
	}
	return ProgramDetail{ProgramSummary: toSummary(p), Sections: sections}
}

func toSectionDetail(s *model.ProgramSection) SectionDetail {
	detail := SectionDetail{
		ID:           s.ID,
		ProgramID:    s.ProgramID,
		Title:        s.Title,
		SectionType:  s.SectionType,
		DisplayOrder: s.DisplayOrder,
		IsExpanded:   s.IsExpanded,
		Outcomes:     make([]OutcomeDetail, 0, len(s.Outcomes)),
		Semesters:    make([]SemesterDetail, 0, len(s.Semesters)),
	}

	if s.Content != nil {
		c := toContentDetail(s.Content)
		detail.Content = &c
	}
	for i := range s.Outcomes {
		detail.Outcomes = append(detail.Outcomes, toOutcomeDetail(&s.Outcomes[i]))
	}
	for i := range s.Semesters {
		detail.Semesters = append(detail.Semesters, toSemesterDetail(&s.Semesters[i]))
	}
	return detail
}

func toContentDetail(c *model.SectionContent) ContentDetail {
	return ContentDetail{ID: c.ID, SectionID: c.SectionID, ContentHTML: c.ContentHTML, UpdatedAt: c.UpdatedAt}
}

func toOutcomeDetail(o *model.ProgramOutcome) OutcomeDetail {
	return OutcomeDetail{
		ID:           o.ID,
		SectionID:    o.SectionID,
		OutcomeCode:  o.OutcomeCode,
		OutcomeText:  o.OutcomeText,
		DisplayOrder: o.DisplayOrder,
	}
}

func toSemesterDetail(s *model.CurriculumSemester) SemesterDetail {
	courses := make([]CourseDetail, 0, len(s.Courses))
	for i := range s.Courses {
		courses = append(courses, toCourseDetail(&s.Courses[i]))
	}
	return SemesterDetail{
		ID:             s.ID,
		SectionID:      s.SectionID,
		SemesterNumber: s.SemesterNumber,
		SemesterName:   s.SemesterName,
		DisplayOrder:   s.DisplayOrder,
		Courses:        courses,
	}
}

func toCourseDetail(c *model.CurriculumCourse) CourseDetail {
	return CourseDetail{
		ID:             c.ID,
		SemesterID:     c.SemesterID,
		CourseName:     c.CourseName,
		CourseType:     c.CourseType,
		TheoryHours:    c.TheoryHours,
		LabHours:       c.LabHours,
		TutorialHours:  c.TutorialHours,
		PracticalHours: c.PracticalHours,
		Credits:        c.Credits,
		DisplayOrder:   c.DisplayOrder,
	}
}
