package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"calendar-admin-server/models"
	"calendar-admin-server/storage"

	"golang.org/x/crypto/bcrypt"
)

// Seeds (or promotes) the admin user for the database backend.
// Usage: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run scripts/create_admin.go
func main() {
	db := storage.InitializeDB()

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD environment variables are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	var user models.User
	result := db.Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		log.Fatalf("Error looking up user: %v", result.Error)
	}

	if result.RowsAffected == 0 {
		user = models.User{
			Email:    email,
			Username: strings.SplitN(email, "@", 2)[0],
			Password: string(hash),
			IsAdmin:  true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Error creating admin user: %v", err)
		}
		fmt.Printf("Admin user created: %s\n", email)
		return
	}

	user.Password = string(hash)
	user.IsAdmin = true
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Error updating admin user: %v", err)
	}
	fmt.Printf("Admin user updated: %s\n", email)
}
