package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cse-dept/cms-api/config"
	"github.com/cse-dept/cms-api/database"
	"gorm.io/gorm"
)

var errUsage = errors.New("usage: migrate <up|down|seed|reset>")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, errUsage)
		os.Exit(1)
	}
	command := os.Args[1]
	if !validCommand(command) {
		fmt.Fprintln(os.Stderr, errUsage)
		os.Exit(1)
	}

	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}
	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	store, err := database.StartGORM(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	seed := database.SeedConfig{
		AdminEmail:    env.ADMIN_EMAIL,
		AdminPassword: env.ADMIN_PASSWORD,
		AdminName:     env.ADMIN_NAME,
	}

	if err := run(os.Stdout, store.GetDB(), command, seed); err != nil {
		store.Close()
		log.Fatalf("❌ %s failed: %v", command, err)
	}
}

func validCommand(command string) bool {
	switch command {
	case "up", "down", "seed", "reset":
		return true
	}
	return false
}

// run executes one migration command against db
func run(out io.Writer, db *gorm.DB, command string, seed database.SeedConfig) error {
	separator := strings.Repeat("=", 60)
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "CSE Department CMS - migrate %s\n", command)
	fmt.Fprintln(out, separator)

	var err error
	switch command {
	case "up":
		err = database.Up(db)
	case "down":
		err = database.Down(db)
	case "seed":
		err = database.NewSeeder(db, seed).SeedAll()
	case "reset":
		err = database.Reset(db, seed)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "🎉 %s completed successfully!\n", command)
	if (command == "seed" || command == "reset") && (seed.AdminEmail == "" || seed.AdminPassword == "") {
		fmt.Fprintln(out, "ADMIN_EMAIL or ADMIN_PASSWORD not set, admin user creation was skipped.")
	}
	return nil
}
