package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studylog/backend/config"
	"studylog/backend/services"
	"studylog/backend/utils"
)

type CoursesController struct {
	Catalog     services.CourseCatalog
	Enrollments services.EnrollmentStore
	Cfg         *config.Config
}

func NewCoursesController(catalog services.CourseCatalog, enrollments services.EnrollmentStore, cfg *config.Config) *CoursesController {
	return &CoursesController{Catalog: catalog, Enrollments: enrollments, Cfg: cfg}
}

// GetCourses godoc
// @Summary List courses
// @Description Returns every course with the caller's enrollment state
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courses, err := cc.Catalog.ListCourses()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load courses",
		})
	}

	enrolled, err := cc.Enrollments.GetEnrolled(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load enrollments",
		})
	}
	progress, err := cc.Enrollments.GetProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load progress",
		})
	}

	enrolledSet := make(map[string]bool, len(enrolled))
	for _, id := range enrolled {
		enrolledSet[id] = true
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"lessons":     len(course.Lessons),
			"enrolled":    enrolledSet[course.ID],
			"progress":    progress[course.ID],
		})
	}

	return c.JSON(result)
}

// GetCourseDetails returns the course with lessons plus the caller's progress
// and completed-lesson set. Unknown course IDs get a 404 so the page can
// redirect back to the course list.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("id")
	course, err := cc.Catalog.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	progress, err := cc.Enrollments.GetProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load progress",
		})
	}
	completed, err := cc.Enrollments.GetCompletedLessons(userID, courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load completed lessons",
		})
	}

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"lessons":     course.Lessons,
		},
		"progress":          progress[courseID],
		"completed_lessons": completed,
	})
}

// Enroll adds the caller to the course. The response is only sent after the
// store confirmed the write, so the page never shows an enrollment that was
// rejected.
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("id")
	if _, err := cc.Catalog.GetCourse(courseID); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if err := cc.Enrollments.Enroll(userID, courseID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not enroll",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Enrolled",
		"course_id": courseID,
	})
}

// UpdateProgress overwrites the stored percentage directly.
func (cc *CoursesController) UpdateProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("id")

	var input struct {
		Progress int `json:"progress"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Progress < 0 || input.Progress > 100 {
		return utils.BadRequest(c, "Progress must be between 0 and 100")
	}

	if err := cc.Enrollments.SetProgress(userID, courseID, input.Progress); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Progress updated",
		"progress": input.Progress,
	})
}

// UpdateCompletedLessons replaces the completed set and returns the derived
// percentage.
func (cc *CoursesController) UpdateCompletedLessons(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("id")

	var input struct {
		CompletedLessons []string `json:"completed_lessons"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	progress, err := cc.Enrollments.SetCompletedLessons(userID, courseID, input.CompletedLessons)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save completed lessons",
		})
	}

	return c.JSON(fiber.Map{
		"message":           "Lessons updated",
		"progress":          progress,
		"completed_lessons": input.CompletedLessons,
	})
}

// GetProgress returns the caller's progress map (courseID -> percentage).
func (cc *CoursesController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	progress, err := cc.Enrollments.GetProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load progress",
		})
	}

	return c.JSON(fiber.Map{
		"progress": progress,
	})
}
