package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// Demo credentials for local development. The password satisfies the
// registration policy so the same account works through the API.
const (
	demoEmail    = "demo@taskhub.local"
	demoPassword = "Dem0!pass"
)

func strptr(s string) *string { return &s }

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	hasher := auth.NewHasher()

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	switch {
	case err == nil:
		log.Printf("Demo user already exists: %s", user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := hasher.Hash(demoPassword)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &model.User{Email: demoEmail, PasswordHash: hashed}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	default:
		log.Fatalf("Failed to look up demo user: %v", err)
	}

	existing, err := taskRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list demo tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d tasks, nothing to do", len(existing))
		return
	}

	tasks := []model.Task{
		{OwnerID: user.ID, Title: "Buy milk"},
		{OwnerID: user.ID, Title: "Write project report", Description: strptr("Quarterly status for the team")},
		{OwnerID: user.ID, Title: "Book dentist appointment", Completed: true},
	}
	for i := range tasks {
		if err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			log.Fatalf("Failed to create task %q: %v", tasks[i].Title, err)
		}
	}

	log.Printf("Seeded %d tasks for %s", len(tasks), demoEmail)
}
