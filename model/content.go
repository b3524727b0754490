package model

import (
	"time"

	"gorm.io/datatypes"
)

// Slider is a homepage carousel image
type Slider struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ImagePath string    `gorm:"type:varchar(500);not null" json:"image_path"`
	Caption   string    `gorm:"type:varchar(255)" json:"caption"`
	Order     int       `gorm:"column:sort_order;default:0;index" json:"order"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
}

// People is a faculty or staff profile
type People struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Slug          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Designation   string         `gorm:"type:varchar(255)" json:"designation"`
	Email         string         `gorm:"type:varchar(255)" json:"email"`
	Phone         string         `gorm:"type:varchar(50)" json:"phone"`
	Webpage       string         `gorm:"type:varchar(500)" json:"webpage"`
	PhotoPath     string         `gorm:"type:varchar(500)" json:"photo_path"`
	ResearchAreas string         `gorm:"type:text" json:"research_areas"`
	Bio           string         `gorm:"type:text" json:"bio"`
	JoiningDate   *time.Time     `json:"joining_date"`
	Department    string         `gorm:"type:varchar(255);default:'Computer Science & Engineering'" json:"department"`
	Education     datatypes.JSON `json:"education"`
	Publications  datatypes.JSON `json:"publications"`
	Workshops     datatypes.JSON `json:"workshops"`
	Order         int            `gorm:"column:sort_order;default:0;index" json:"order"`
}

// TableName specifies the table name for People
func (People) TableName() string {
	return "people"
}

// News is a department news item
type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Summary     string    `gorm:"type:text" json:"summary"`
	Body        string    `gorm:"type:text" json:"body"`
	ImagePath   string    `gorm:"type:varchar(500)" json:"image_path"`
	IsPublished bool      `gorm:"not null;index" json:"isPublished"`
}

// TableName specifies the table name for News
func (News) TableName() string {
	return "news"
}

// Event is a dated department event
type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	StartsAt    time.Time  `gorm:"not null;index" json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Venue       string     `gorm:"type:varchar(255)" json:"venue"`
	Description string     `gorm:"type:text" json:"description"`
	Link        string     `gorm:"type:varchar(500)" json:"link"`
	BannerPath  string     `gorm:"type:varchar(500)" json:"banner_path"`
	IsPublished bool       `gorm:"not null;index" json:"isPublished"`
}

// Achievement is a student or faculty achievement
type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Students    string    `gorm:"type:text" json:"students"`
	Description string    `gorm:"type:text" json:"description"`
	Link        string    `gorm:"type:varchar(500)" json:"link"`
	ImagePath   string    `gorm:"type:varchar(500)" json:"image_path"`
	IsPublished bool      `gorm:"not null;index" json:"isPublished"`
}

// Newsletter is a periodic PDF issue
type Newsletter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	IssueDate   time.Time `gorm:"not null;index" json:"issueDate"`
	Description string    `gorm:"type:text" json:"description"`
	PDFPath     string    `gorm:"type:varchar(500);not null" json:"pdf_path"`
}

// DirectoryEntry is a contact row in the department directory
type DirectoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Role      string    `gorm:"type:varchar(255);not null" json:"role"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Location  string    `gorm:"type:varchar(255)" json:"location"`
}

// TableName specifies the table name for DirectoryEntry
func (DirectoryEntry) TableName() string {
	return "directory_entries"
}

// InfoBlock is a keyed block of static page content
type InfoBlock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Key       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	MediaPath string    `gorm:"type:varchar(500)" json:"media_path"`
}

// Research categories and statuses
const (
	ResearchArea        = "Area"
	ResearchProject     = "Project"
	ResearchPublication = "Publication"
	ResearchPatent      = "Patent"

	ResearchOngoing   = "Ongoing"
	ResearchCompleted = "Completed"
	ResearchPublished = "Published"
	ResearchProposed  = "Proposed"
)

// Research is a research area, project, publication or patent
type Research struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Category      string    `gorm:"type:varchar(20);not null;default:'Area';index" json:"category"`
	Description   string    `gorm:"type:text" json:"description"`
	Faculty       string    `gorm:"type:text" json:"faculty"`
	FundingAgency string    `gorm:"type:varchar(255)" json:"funding_agency"`
	FundingAmount string    `gorm:"type:varchar(100)" json:"funding_amount"`
	Duration      string    `gorm:"type:varchar(100)" json:"duration"`
	Status        *string   `gorm:"type:varchar(20)" json:"status"`
	Link          string    `gorm:"type:varchar(500)" json:"link"`
	ImagePath     string    `gorm:"type:varchar(500)" json:"image_path"`
	DisplayOrder  int       `gorm:"default:0" json:"display_order"`
	IsFeatured    bool      `gorm:"default:false;index" json:"is_featured"`
}

// TableName specifies the table name for Research
func (Research) TableName() string {
	return "research"
}

// Facility categories
const (
	FacilityLaboratory     = "Laboratory"
	FacilityInfrastructure = "Infrastructure"
	FacilityEquipment      = "Equipment"
	FacilitySoftware       = "Software"
	FacilityOther          = "Other"
)

// Facility is a lab, equipment or infrastructure listing
type Facility struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Category       string         `gorm:"type:varchar(20);not null;default:'Laboratory';index" json:"category"`
	Description    string         `gorm:"type:text" json:"description"`
	Specifications string         `gorm:"type:text" json:"specifications"`
	Location       string         `gorm:"type:varchar(255)" json:"location"`
	Capacity       *int           `json:"capacity"`
	InCharge       string         `gorm:"type:varchar(255)" json:"in_charge"`
	ImagePath      string         `gorm:"type:varchar(500)" json:"image_path"`
	GalleryImages  datatypes.JSON `json:"gallery_images"`
	DisplayOrder   int            `gorm:"default:0" json:"display_order"`
	IsActive       bool           `gorm:"not null;index" json:"is_active"`
}

// TableName specifies the table name for Facility
func (Facility) TableName() string {
	return "facilities"
}
