package database

import (
	"fmt"
	"log"

	"github.com/cse-dept/cms-api/model"
	"gorm.io/gorm"
)

// Models lists every table in dependency order (parents before children)
func Models() []interface{} {
	return []interface{}{
		// Accounts
		&model.User{},
		&model.JWTTokenBlacklist{},
		&model.AdminAuditLog{},
		&model.CronJobLog{},

		// Program hierarchy
		&model.Program{},
		&model.ProgramSection{},
		&model.CurriculumSemester{},
		&model.CurriculumCourse{},
		&model.ProgramOutcome{},
		&model.SectionContent{},

		// Flat content
		&model.Slider{},
		&model.People{},
		&model.News{},
		&model.Event{},
		&model.Achievement{},
		&model.Newsletter{},
		&model.DirectoryEntry{},
		&model.InfoBlock{},
		&model.Research{},
		&model.Facility{},
	}
}

// Up creates or updates every table
func Up(db *gorm.DB) error {
	log.Println("Running GORM AutoMigrate for all models...")

	if err := db.AutoMigrate(Models()...); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Down drops every table, children first
func Down(db *gorm.DB) error {
	models := Models()
	migrator := db.Migrator()

	for i := len(models) - 1; i >= 0; i-- {
		if !migrator.HasTable(models[i]) {
			continue
		}
		if err := migrator.DropTable(models[i]); err != nil {
			return fmt.Errorf("drop %T: %w", models[i], err)
		}
	}

	log.Println("All tables dropped")
	return nil
}

// Reset drops, recreates and seeds the schema
func Reset(db *gorm.DB, seed SeedConfig) error {
	if err := Down(db); err != nil {
		return err
	}
	if err := Up(db); err != nil {
		return err
	}
	return NewSeeder(db, seed).SeedAll()
}
