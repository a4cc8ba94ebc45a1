package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PlanFox/app/models"
	"github.com/ManuelReschke/PlanFox/internal/pkg/database"
	"github.com/ManuelReschke/PlanFox/internal/pkg/env"
	"github.com/ManuelReschke/PlanFox/internal/pkg/subscriptions"
)

// Seeds the plan catalog and, when ADMIN_EMAIL/ADMIN_PASSWORD are set,
// an initial admin account. Safe to run repeatedly.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	db := database.GetDB()

	if err := models.EnsureDefaultPlans(db); err != nil {
		log.Fatalf("failed to seed plans: %v", err)
	}
	log.Println("plan catalog seeded")

	adminEmail := env.GetEnv("ADMIN_EMAIL", "")
	adminPassword := env.GetEnv("ADMIN_PASSWORD", "")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	if err := seedAdmin(db, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("admin account %s already exists", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin, err := models.CreateUser(env.GetEnv("ADMIN_NAME", "Administrator"), email, password)
	if err != nil {
		return err
	}
	admin.Role = models.ROLE_ADMIN

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserProfile{UserID: admin.ID}).Error; err != nil {
			return err
		}
		if _, err := subscriptions.NewServiceFromDB(tx).CreateInitial(context.Background(), admin.ID); err != nil {
			return err
		}
		log.Printf("admin account %s created", email)
		return nil
	})
}
