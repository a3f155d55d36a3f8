package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"playerslog-backend/internal/config"
	"playerslog-backend/internal/database"
	"playerslog-backend/internal/models"
	"playerslog-backend/internal/services"
)

// Creates or updates an admin-console account:
//
//	go run ./cmd/createadmin <email> <password> [role]
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: createadmin <email> <password> [role]")
		os.Exit(1)
	}
	email := os.Args[1]
	password := os.Args[2]
	role := "admin"
	if len(os.Args) > 3 {
		role = os.Args[3]
	}
	if role != "admin" && role != "superadmin" {
		log.Fatalf("Invalid role %q (want admin or superadmin)", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	db := database.GetDB()

	var admin models.AdminUser
	err = db.Where("email = ?", email).First(&admin).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up admin: %v", err)
	}
	if err == nil {
		admin.PasswordHash = hash
		admin.Role = role
		if err := db.Save(&admin).Error; err != nil {
			log.Fatalf("Failed to update admin: %v", err)
		}
		log.Printf("✅ Updated admin account %s (%s)", email, role)
		return
	}

	admin = models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("✅ Created admin account %s (%s)", email, role)
}
