package database

import (
	"log"

	"bookstore-app/config"
	"bookstore-app/internal/models"
	"bookstore-app/internal/utils"

	"gorm.io/gorm"
)

func SeedRolesAndAdmin() {
	// Seed Roles
	roles := []string{"admin", "customer"}
	for _, r := range roles {
		var role models.Role
		if err := DB.FirstOrCreate(&role, models.Role{Name: r}).Error; err != nil {
			log.Printf("Failed to seed role %s: %v", r, err)
		}
	}

	// Seed Admin User
	var adminRole models.Role
	DB.Where("name = ?", "admin").First(&adminRole)

	var adminUser models.User
	if err := DB.Where("email = ?", config.AppConfig.Defaults.AdminEmail).First(&adminUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashedPassword, _ := utils.HashPassword(config.AppConfig.Defaults.AdminPassword)
			admin := models.User{
				Email:        config.AppConfig.Defaults.AdminEmail,
				Name:         "Store Admin",
				PasswordHash: hashedPassword,
				RoleID:       adminRole.ID,
				IsActive:     true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("Failed to seed admin user: %v", err)
			} else {
				log.Println("Admin user seeded successfully.")
			}
		}
	}

	// Seed starter categories so the catalog is browsable on first boot
	categories := []string{"Van hoc", "Kinh te", "Ky nang song", "Thieu nhi", "Ngoai ngu"}
	for _, name := range categories {
		var category models.Category
		if err := DB.FirstOrCreate(&category, models.Category{Name: name}).Error; err != nil {
			log.Printf("Failed to seed category %s: %v", name, err)
		}
	}
}
