package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studylog/backend/config"
	"studylog/backend/controllers"
	"studylog/backend/middleware"
	"studylog/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Stores
	catalog := services.NewGormCatalog(db)
	enrollments := services.NewGormEnrollmentStore(db, catalog)
	journal := services.NewGormJournalStore(db)
	ledger := services.NewGormLoginLedger(db)
	identity := services.NewGormIdentity(db)

	// Auth routes
	authController := controllers.NewAuthController(identity, ledger, journal, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, enrollments, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(catalog, enrollments, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", coursesController.Enroll)
	courses.Post("/:id/progress", coursesController.UpdateProgress)
	courses.Post("/:id/lessons", coursesController.UpdateCompletedLessons)

	// Progress routes
	app.Get("/api/progress", authMiddleware, coursesController.GetProgress)

	// Journal routes
	journalController := controllers.NewJournalController(journal, cfg)
	app.Post("/api/journal", authMiddleware, journalController.CreateEntry)
	app.Get("/api/journal", authMiddleware, journalController.GetEntries)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(catalog, enrollments, journal, ledger, cfg)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetOverview)
	app.Get("/api/logins/:year/:month", authMiddleware, dashboardController.GetLoginDays)
}
