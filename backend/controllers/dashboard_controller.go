package controllers

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"studylog/backend/config"
	"studylog/backend/models"
	"studylog/backend/services"
	"studylog/backend/utils"
)

type DashboardController struct {
	Catalog     services.CourseCatalog
	Enrollments services.EnrollmentStore
	Journal     services.JournalStore
	Ledger      services.LoginLedger
	Cfg         *config.Config
}

func NewDashboardController(catalog services.CourseCatalog, enrollments services.EnrollmentStore, journal services.JournalStore, ledger services.LoginLedger, cfg *config.Config) *DashboardController {
	return &DashboardController{
		Catalog:     catalog,
		Enrollments: enrollments,
		Journal:     journal,
		Ledger:      ledger,
		Cfg:         cfg,
	}
}

// GetOverview godoc
// @Summary Dashboard overview
// @Description Per-course completion stats, overall progress, recent journal entries and this month's login days
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardOverview
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courses, err := dc.Catalog.ListCourses()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load courses",
		})
	}
	byID := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	enrolled, err := dc.Enrollments.GetEnrolled(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load enrollments",
		})
	}
	progress, err := dc.Enrollments.GetProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load progress",
		})
	}

	stats := make([]models.CourseCompletion, 0, len(enrolled))
	progressSum := 0
	for _, courseID := range enrolled {
		course, ok := byID[courseID]
		if !ok {
			continue
		}
		completed, err := dc.Enrollments.GetCompletedLessons(userID, courseID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not load completed lessons",
			})
		}
		stats = append(stats, models.CourseCompletion{
			CourseID:  courseID,
			Title:     course.Title,
			Progress:  progress[courseID],
			Completed: len(completed),
			Total:     len(course.Lessons),
		})
		progressSum += progress[courseID]
	}

	overall := 0
	if len(stats) > 0 {
		overall = int(math.Round(float64(progressSum) / float64(len(stats))))
	}

	journals, err := dc.Journal.List(userID, "", "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load journal entries",
		})
	}
	if len(journals) > 3 {
		journals = journals[:3]
	}

	now := time.Now().UTC()
	loginDays, err := dc.Ledger.GetLoginDays(userID, now.Year(), int(now.Month()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load login days",
		})
	}

	return c.JSON(models.DashboardOverview{
		OverallProgress: overall,
		Courses:         stats,
		RecentJournals:  journals,
		LoginDays:       loginDays,
	})
}

// GetLoginDays returns the marked login days for the given calendar month.
func (dc *DashboardController) GetLoginDays(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return utils.BadRequest(c, "Invalid year")
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return utils.BadRequest(c, "Invalid month")
	}

	days, err := dc.Ledger.GetLoginDays(userID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load login days",
		})
	}

	return c.JSON(fiber.Map{
		"year":  year,
		"month": month,
		"days":  days,
	})
}
