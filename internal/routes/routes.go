// Package routes wires repositories, services and handlers onto the fiber
// app.
package routes

import (
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/repositories"
	"fintrack/internal/services/account"
	"fintrack/internal/services/auth"
	"fintrack/internal/services/category"
	"fintrack/internal/services/stats"
	"fintrack/internal/services/transaction"
	"fintrack/internal/services/transfer"
	"fintrack/internal/services/user"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes builds the dependency graph and registers every route.
func SetupRoutes(app *fiber.App) {
	userRepo := repositories.NewUserRepository(repositories.DB)
	accountRepo := repositories.NewAccountRepository(repositories.DB)
	categoryRepo := repositories.NewCategoryRepository(repositories.DB)
	transactionRepo := repositories.NewTransactionRepository(repositories.DB)

	authService := auth.NewService(userRepo)
	transactionService := transaction.NewService(transactionRepo, categoryRepo, repositories.CacheService)
	statsService := stats.NewService(transactionRepo, accountRepo, userRepo, repositories.CacheService)
	transferService := transfer.NewService(accountRepo, repositories.CacheService)
	accountService := account.NewService(accountRepo, repositories.CacheService)
	categoryService := category.NewService(categoryRepo)
	userService := user.NewService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	statsHandler := handlers.NewStatsHandler(statsService)
	transferHandler := handlers.NewTransferHandler(transferService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userSettingsHandler := handlers.NewUserSettingsHandler(userService)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Everything below requires a valid token
	protected := api.Use(middleware.Protected(userRepo))

	protected.Post("/logout", authHandler.Logout)

	protected.Get("/user-settings", userSettingsHandler.Get)
	protected.Put("/user-settings", userSettingsHandler.Update)

	protected.Post("/transactions", transactionHandler.Create)
	protected.Put("/transactions/:id", transactionHandler.Update)
	protected.Delete("/transactions/:id", transactionHandler.Delete)
	protected.Post("/transactions/bulk-delete", transactionHandler.BulkDelete)
	protected.Get("/transactions-history", statsHandler.TransactionsHistory)

	protected.Post("/transfer", transferHandler.Transfer)

	statsGroup := protected.Group("/stats")
	statsGroup.Get("/balance", statsHandler.Balance)
	statsGroup.Get("/categories", statsHandler.Categories)
	statsGroup.Get("/bank", statsHandler.Bank)

	accounts := protected.Group("/accounts")
	accounts.Get("/", accountHandler.List)
	accounts.Post("/", accountHandler.Create)
	accounts.Post("/bulk", accountHandler.BulkAdd)
	accounts.Put("/selection", accountHandler.UpsertSelection)

	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/", categoryHandler.Delete)
}
