package database

import (
	"fmt"
	"log"
	"time"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/auth"
	"github.com/cse-dept/cms-api/utils/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedConfig carries the credentials of the first administrator
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Seeder handles database seeding operations
type Seeder struct {
	db  *gorm.DB
	cfg SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg SeedConfig) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// SeedAll runs all seed functions. Tables that already hold rows are skipped.
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"admin user", s.SeedAdminUser},
		{"sliders", s.SeedSliders},
		{"people", s.SeedPeople},
		{"programs", s.SeedPrograms},
		{"news", s.SeedNews},
		{"events", s.SeedEvents},
		{"achievements", s.SeedAchievements},
		{"newsletters", s.SeedNewsletters},
		{"directory", s.SeedDirectory},
		{"info blocks", s.SeedInfoBlocks},
		{"research", s.SeedResearch},
		{"facilities", s.SeedFacilities},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *Seeder) isEmpty(m interface{}) (bool, error) {
	var count int64
	if err := s.db.Model(m).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping...")
		return nil
	}

	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	name := s.cfg.AdminName
	if name == "" {
		name = "Admin"
	}

	admin := &model.User{
		Email:        s.cfg.AdminEmail,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user: %s", admin.Email)
	return nil
}

// SeedSliders creates the homepage carousel
func (s *Seeder) SeedSliders() error {
	if empty, err := s.isEmpty(&model.Slider{}); err != nil || !empty {
		return err
	}

	sliders := []model.Slider{
		{ImagePath: "/uploads/images/slider-campus.jpg", Caption: "Welcome to the Department of Computer Science & Engineering", Order: 1, IsActive: true},
		{ImagePath: "/uploads/images/slider-labs.jpg", Caption: "State of the art research laboratories", Order: 2, IsActive: true},
		{ImagePath: "/uploads/images/slider-fest.jpg", Caption: "CodeRush tech fest", Order: 3, IsActive: true},
	}
	return s.db.Create(&sliders).Error
}

// SeedPeople creates faculty profiles with unique slugs
func (s *Seeder) SeedPeople() error {
	if empty, err := s.isEmpty(&model.People{}); err != nil || !empty {
		return err
	}

	people := []model.People{
		{
			Name:          "Dr. Rajesh Kumar",
			Designation:   "Professor & Head",
			Email:         "rajesh.kumar@cse.example.edu",
			ResearchAreas: "Machine Learning, Computer Vision",
			Education:     datatypes.JSON(`[{"degree":"Ph.D.","institute":"IIT Delhi","year":2005}]`),
			Order:         1,
		},
		{
			Name:          "Dr. Priya Sharma",
			Designation:   "Associate Professor",
			Email:         "priya.sharma@cse.example.edu",
			ResearchAreas: "Distributed Systems, Cloud Computing",
			Order:         2,
		},
		{
			Name:          "Dr. Amit Verma",
			Designation:   "Assistant Professor",
			Email:         "amit.verma@cse.example.edu",
			ResearchAreas: "Cyber Security, Blockchain",
			Order:         3,
		},
	}

	for i := range people {
		candidate, err := slug.Unique(slug.Generate(people[i].Name), slug.PeopleExists(s.db, 0))
		if err != nil {
			return err
		}
		people[i].Slug = candidate
		if err := s.db.Create(&people[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedPrograms creates the program catalogue and one full curriculum tree
func (s *Seeder) SeedPrograms() error {
	if empty, err := s.isEmpty(&model.Program{}); err != nil || !empty {
		return err
	}

	credits := 160
	programs := []model.Program{
		{Name: "B.Tech in Computer Science & Engineering", ShortName: "B.Tech CSE", Level: model.LevelUG, Duration: "4 Years", TotalCredits: &credits, DisplayOrder: 1},
		{Name: "B.Tech in CSE with specialization in AI & ML", ShortName: "B.Tech AIML", Level: model.LevelUG, Duration: "4 Years", DisplayOrder: 2},
		{Name: "M.Tech in Computer Science & Engineering", ShortName: "M.Tech CSE", Level: model.LevelPG, Duration: "2 Years", DisplayOrder: 1},
		{Name: "M.Tech in Data Science", ShortName: "M.Tech DS", Level: model.LevelPG, Duration: "2 Years", DisplayOrder: 2},
		{Name: "Ph.D. in Computer Science & Engineering", ShortName: "Ph.D. CSE", Level: model.LevelPhD, Duration: "3-5 Years", DisplayOrder: 1},
	}
	if err := s.db.Create(&programs).Error; err != nil {
		return err
	}

	// Full tree under the flagship B.Tech program
	return s.db.Transaction(func(tx *gorm.DB) error {
		curriculum := model.ProgramSection{
			ProgramID:    programs[0].ID,
			Title:        "Curriculum",
			SectionType:  model.SectionTypeCurriculum,
			DisplayOrder: 1,
			IsExpanded:   true,
			Semesters: []model.CurriculumSemester{
				{
					SemesterNumber: 1,
					SemesterName:   "Semester I",
					DisplayOrder:   1,
					Courses: []model.CurriculumCourse{
						{CourseName: "Programming for Problem Solving", CourseType: "ES", TheoryHours: 3, LabHours: 2, Credits: 4, DisplayOrder: 1},
						{CourseName: "Engineering Mathematics I", CourseType: "BS", TheoryHours: 3, TutorialHours: 1, Credits: 4, DisplayOrder: 2},
					},
				},
				{
					SemesterNumber: 2,
					SemesterName:   "Semester II",
					DisplayOrder:   2,
					Courses: []model.CurriculumCourse{
						{CourseName: "Data Structures", CourseType: "PC", TheoryHours: 3, LabHours: 2, Credits: 4, DisplayOrder: 1},
					},
				},
			},
		}
		if err := tx.Create(&curriculum).Error; err != nil {
			return err
		}

		outcomes := model.ProgramSection{
			ProgramID:    programs[0].ID,
			Title:        "Program Outcomes",
			SectionType:  model.SectionTypeOutcome,
			DisplayOrder: 2,
			Outcomes: []model.ProgramOutcome{
				{OutcomeCode: "PO1", OutcomeText: "Apply knowledge of mathematics, science and engineering fundamentals.", DisplayOrder: 1},
				{OutcomeCode: "PO2", OutcomeText: "Identify, formulate and analyse complex engineering problems.", DisplayOrder: 2},
			},
		}
		if err := tx.Create(&outcomes).Error; err != nil {
			return err
		}

		overview := model.ProgramSection{
			ProgramID:    programs[0].ID,
			Title:        "Overview",
			SectionType:  model.SectionTypeOverview,
			DisplayOrder: 0,
			Content:      &model.SectionContent{ContentHTML: "<p>A four year undergraduate program in computing.</p>"},
		}
		return tx.Create(&overview).Error
	})
}

// SeedNews creates sample news items
func (s *Seeder) SeedNews() error {
	if empty, err := s.isEmpty(&model.News{}); err != nil || !empty {
		return err
	}

	now := time.Now()
	news := []model.News{
		{Title: "Department Hosts National Conference on AI and Machine Learning", Date: now.AddDate(0, 0, -10), Summary: "Two days of talks and workshops.", IsPublished: true},
		{Title: "Students Win Best Paper Award at International Conference", Date: now.AddDate(0, 0, -20), Summary: "Recognition for work on federated learning.", IsPublished: true},
		{Title: "New Research Lab Inaugurated for Quantum Computing", Date: now.AddDate(0, 0, -30), Summary: "A new lab opens in Block C.", IsPublished: true},
	}
	return s.db.Create(&news).Error
}

// SeedEvents creates upcoming events
func (s *Seeder) SeedEvents() error {
	if empty, err := s.isEmpty(&model.Event{}); err != nil || !empty {
		return err
	}

	now := time.Now()
	events := []model.Event{
		{Title: "Tech Fest 2025 - CodeRush", StartsAt: now.AddDate(0, 1, 0), Venue: "Main Auditorium", IsPublished: true},
		{Title: "Workshop on Full Stack Web Development", StartsAt: now.AddDate(0, 0, 14), Venue: "Lab 3", IsPublished: true},
		{Title: "Guest Lecture Series on Cybersecurity", StartsAt: now.AddDate(0, 0, 7), Venue: "Seminar Hall", IsPublished: true},
	}
	return s.db.Create(&events).Error
}

// SeedAchievements creates sample achievements
func (s *Seeder) SeedAchievements() error {
	if empty, err := s.isEmpty(&model.Achievement{}); err != nil || !empty {
		return err
	}

	achievements := []model.Achievement{
		{Title: "Google Summer of Code Selection", Students: "Rahul Singh", IsPublished: true},
		{Title: "ACM ICPC Asia Regional Finalist", Students: "Team Byte Busters", IsPublished: true},
		{Title: "Best Startup Award at State Innovation Challenge", Students: "Neha Gupta, Arjun Mehta", IsPublished: true},
	}
	return s.db.Create(&achievements).Error
}

// SeedNewsletters creates newsletter issues pointing at bundled PDFs
func (s *Seeder) SeedNewsletters() error {
	if empty, err := s.isEmpty(&model.Newsletter{}); err != nil || !empty {
		return err
	}

	newsletters := []model.Newsletter{
		{Title: "CSE Newsletter - Winter 2024", IssueDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), PDFPath: "/uploads/pdfs/newsletter-winter-2024.pdf"},
		{Title: "CSE Newsletter - Monsoon 2024", IssueDate: time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), PDFPath: "/uploads/pdfs/newsletter-monsoon-2024.pdf"},
	}
	return s.db.Create(&newsletters).Error
}

// SeedDirectory creates contact entries
func (s *Seeder) SeedDirectory() error {
	if empty, err := s.isEmpty(&model.DirectoryEntry{}); err != nil || !empty {
		return err
	}

	entries := []model.DirectoryEntry{
		{Name: "Dr. Rajesh Kumar", Role: "Head of Department", Email: "hod@cse.example.edu", Location: "Room 101"},
		{Name: "Ms. Sunita Yadav", Role: "Office Superintendent", Phone: "+91-755-0000001", Location: "Room 102"},
		{Name: "Mr. Ramesh Choudhary", Role: "Lab Assistant", Location: "Lab 1"},
	}
	return s.db.Create(&entries).Error
}

// SeedInfoBlocks creates the keyed static page blocks
func (s *Seeder) SeedInfoBlocks() error {
	if empty, err := s.isEmpty(&model.InfoBlock{}); err != nil || !empty {
		return err
	}

	blocks := []model.InfoBlock{
		{Key: "about_department", Title: "About the Department", Body: "<p>The department was established in 1986.</p>"},
		{Key: "vision", Title: "Vision", Body: "<p>To be a centre of excellence in computing education and research.</p>"},
		{Key: "mission", Title: "Mission", Body: "<p>To impart quality education and foster innovation.</p>"},
	}
	return s.db.Create(&blocks).Error
}

// SeedResearch creates research areas and a featured project
func (s *Seeder) SeedResearch() error {
	if empty, err := s.isEmpty(&model.Research{}); err != nil || !empty {
		return err
	}

	ongoing := model.ResearchOngoing
	research := []model.Research{
		{Title: "Machine Learning", Category: model.ResearchArea, DisplayOrder: 1},
		{Title: "Secure IoT Gateways", Category: model.ResearchProject, Faculty: "Dr. Amit Verma", FundingAgency: "DST", Status: &ongoing, DisplayOrder: 2, IsFeatured: true},
	}
	return s.db.Create(&research).Error
}

// SeedFacilities creates lab listings
func (s *Seeder) SeedFacilities() error {
	if empty, err := s.isEmpty(&model.Facility{}); err != nil || !empty {
		return err
	}

	capacity := 60
	facilities := []model.Facility{
		{Name: "Artificial Intelligence Lab", Category: model.FacilityLaboratory, Capacity: &capacity, DisplayOrder: 1, IsActive: true},
		{Name: "High Performance Computing Cluster", Category: model.FacilityEquipment, DisplayOrder: 2, IsActive: true},
	}
	return s.db.Create(&facilities).Error
}
