package model

import (
	"time"
)

// Program levels
const (
	LevelUG  = "UG"
	LevelPG  = "PG"
	LevelPhD = "PhD"
)

// Section types
const (
	SectionTypeCurriculum = "curriculum"
	SectionTypeInfo       = "info"
	SectionTypeOutcome    = "outcome"
	SectionTypeOverview   = "overview"
)

// Program represents a degree offering (e.g., B.Tech CSE, M.Tech AI)
type Program struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	ShortName         string    `gorm:"type:varchar(20)" json:"short_name"`
	Level             string    `gorm:"type:varchar(10);not null;index" json:"level"` // UG, PG, PhD
	Description       string    `gorm:"type:text" json:"description"`
	Overview          string    `gorm:"type:text" json:"overview"`
	Duration          string    `gorm:"type:varchar(50)" json:"duration"`
	TotalCredits      *int      `json:"total_credits"`
	CurriculumPDFPath *string   `gorm:"type:varchar(500)" json:"curriculum_pdf_path"`
	DisplayOrder      int       `gorm:"default:0;index" json:"display_order"`

	// Relationships
	Sections []ProgramSection `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

// ProgramSection is a named subdivision of a program page
type ProgramSection struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ProgramID    uint      `gorm:"not null;index" json:"program_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	SectionType  string    `gorm:"type:varchar(20);not null;default:'info'" json:"section_type"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsExpanded   bool      `gorm:"default:false" json:"is_expanded"`

	// Relationships
	Semesters []CurriculumSemester `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"semesters,omitempty"`
	Outcomes  []ProgramOutcome     `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"outcomes,omitempty"`
	Content   *SectionContent      `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"content,omitempty"`
}

// CurriculumSemester groups courses of one term inside a curriculum section
type CurriculumSemester struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	SectionID      uint      `gorm:"not null;index" json:"section_id"`
	SemesterNumber int       `gorm:"not null" json:"semester_number"`
	SemesterName   string    `gorm:"type:varchar(100)" json:"semester_name"`
	DisplayOrder   int       `gorm:"default:0" json:"display_order"`

	// Relationships
	Courses []CurriculumCourse `gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
}

// CurriculumCourse is a single course row in a semester table
type CurriculumCourse struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	SemesterID     uint      `gorm:"not null;index" json:"semester_id"`
	CourseName     string    `gorm:"type:varchar(255);not null" json:"course_name"`
	CourseType     string    `gorm:"type:varchar(10)" json:"course_type"` // e.g. PC, PE, OE, LAB
	TheoryHours    int       `gorm:"default:0" json:"theory_hours"`
	LabHours       int       `gorm:"default:0" json:"lab_hours"`
	TutorialHours  int       `gorm:"default:0" json:"tutorial_hours"`
	PracticalHours int       `gorm:"default:0" json:"practical_hours"`
	Credits        float64   `gorm:"not null" json:"credits"`
	DisplayOrder   int       `gorm:"default:0" json:"display_order"`
}

// ProgramOutcome is a PO/PSO/PEO statement attached to a section
type ProgramOutcome struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	SectionID    uint      `gorm:"not null;index" json:"section_id"`
	OutcomeCode  string    `gorm:"type:varchar(20)" json:"outcome_code"`
	OutcomeText  string    `gorm:"type:text;not null" json:"outcome_text"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
}

// SectionContent holds the rich text body of a section (at most one per section)
type SectionContent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SectionID   uint      `gorm:"not null;uniqueIndex" json:"section_id"`
	ContentHTML string    `gorm:"type:text" json:"content_html"`
}

// TableName specifies the table name for SectionContent
func (SectionContent) TableName() string {
	return "section_contents"
}
