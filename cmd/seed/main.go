// Command seed creates a demo user with a starter category set, handy for
// local development against a fresh database.
package main

import (
	"log"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var defaultCategories = []models.Category{
	{Name: "Salary", Icon: "💰", Type: models.TransactionTypeIncome},
	{Name: "Freelance", Icon: "💻", Type: models.TransactionTypeIncome},
	{Name: "Groceries", Icon: "🛒", Type: models.TransactionTypeExpense},
	{Name: "Rent", Icon: "🏠", Type: models.TransactionTypeExpense},
	{Name: "Transport", Icon: "🚌", Type: models.TransactionTypeExpense},
	{Name: "Entertainment", Icon: "🎬", Type: models.TransactionTypeExpense},
	{Name: "Other", Icon: "📦", Type: models.TransactionTypeExpense},
}

func main() {
	config.LoadEnv()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Seed user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Demo User",
		Currency: config.GetEnv("SEED_CURRENCY", "USD"),
	}
	if err := repositories.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create seed user:", err)
	}

	categories := repositories.NewCategoryRepository(repositories.DB)
	for _, c := range defaultCategories {
		c.UserID = user.ID
		if err := categories.Create(&c); err != nil {
			log.Fatal("Failed to create category:", err)
		}
	}

	log.Printf("Seed user %s created with %d categories", email, len(defaultCategories))
}
