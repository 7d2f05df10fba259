package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"studylog/backend/config"
	"studylog/backend/services"
	"studylog/backend/utils"
)

type AuthController struct {
	Identity services.Identity
	Ledger   services.LoginLedger
	Journal  services.JournalStore
	Cfg      *config.Config
}

func NewAuthController(identity services.Identity, ledger services.LoginLedger, journal services.JournalStore, cfg *config.Config) *AuthController {
	return &AuthController{Identity: identity, Ledger: ledger, Journal: journal, Cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	fieldErrors := make(map[string]string)
	if input.Username == "" {
		fieldErrors["username"] = "Username is required"
	}
	if input.Email == "" {
		fieldErrors["email"] = "Email is required"
	}
	if len(input.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters long"
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	user, err := ac.Identity.Register(input.Username, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create user",
		})
	}

	token, err := utils.GenerateJWTToken(user.ID, user.DisplayName, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates the user, marks the login day and returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, err := ac.Identity.SignIn(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthFailed) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	token, err := utils.GenerateJWTToken(user.ID, user.DisplayName, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	now := time.Now().UTC()
	newDay, err := ac.Ledger.RecordLogin(user.ID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record login",
		})
	}
	if newDay {
		// First login of the day gets a system journal entry.
		date := now.Format("2006-01-02")
		if _, err := ac.Journal.AppendSystem(user.ID, user.DisplayName+"さんがログインしました", date); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not record login",
			})
		}
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
	})
}

// Logout records a sign-out note in the user's journal. Token invalidation is
// the client's job (tokens simply expire).
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	date := time.Now().UTC().Format("2006-01-02")
	if _, err := ac.Journal.AppendSystem(userID, "ログアウトしました", date); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record logout",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
