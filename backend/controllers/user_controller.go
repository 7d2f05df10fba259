package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studylog/backend/config"
	"studylog/backend/models"
	"studylog/backend/services"
	"studylog/backend/utils"
)

type UserController struct {
	DB          *gorm.DB
	Enrollments services.EnrollmentStore
	Cfg         *config.Config
}

func NewUserController(db *gorm.DB, enrollments services.EnrollmentStore, cfg *config.Config) *UserController {
	return &UserController{DB: db, Enrollments: enrollments, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile with enrollment state
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	enrolled, err := uc.Enrollments.GetEnrolled(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load enrollments")
	}
	progress, err := uc.Enrollments.GetProgress(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load progress")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"display_name":     user.DisplayName,
		"last_login":       user.LastLoginDate,
		"created_at":       user.CreatedAt,
		"enrolled_courses": enrolled,
		"progress":         progress,
	})
}
