// Command grantrole promotes an existing account to a new role.
//
// Usage:
//
//	go run ./scripts/grantrole -email user@example.com -role ADMIN
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/internal/repository"
	"github.com/ojtrack/ojt-tracker-api/pkg/config"
	"github.com/ojtrack/ojt-tracker-api/pkg/database"
)

func main() {
	var (
		email string
		role  string
	)

	flag.StringVar(&email, "email", "", "Email of the account to update")
	flag.StringVar(&role, "role", string(models.RoleAdmin), "Target role (STUDENT, COORDINATOR, ADMIN)")
	flag.Parse()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		flag.Usage()
		os.Exit(2)
	}

	target := models.SubjectRole(strings.ToUpper(strings.TrimSpace(role)))
	if !target.Valid() {
		log.Fatalf("invalid role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.NewSubjectRepository(db)
	updated, err := repo.UpdateRole(ctx, email, target)
	if err != nil {
		log.Fatalf("failed to update role: %v", err)
	}
	if !updated {
		log.Fatalf("no account found for %s", email)
	}

	fmt.Printf("%s is now %s\n", email, target)
}
