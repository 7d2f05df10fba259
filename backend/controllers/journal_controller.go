package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studylog/backend/config"
	"studylog/backend/services"
	"studylog/backend/utils"
)

type JournalController struct {
	Journal services.JournalStore
	Cfg     *config.Config
}

func NewJournalController(journal services.JournalStore, cfg *config.Config) *JournalController {
	return &JournalController{Journal: journal, Cfg: cfg}
}

// CreateEntry godoc
// @Summary Save a journal entry
// @Description Saves a dated free-text entry with mood and reaction metadata
// @Tags journal
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal [post]
func (jc *JournalController) CreateEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Content  string `json:"content"`
		Health   string `json:"health"`
		Reaction string `json:"reaction"`
		Date     string `json:"date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// The store does not validate; content is checked here.
	if strings.TrimSpace(input.Content) == "" {
		return utils.BadRequest(c, "Content is required")
	}

	id, err := jc.Journal.Append(userID, input.Content, input.Health, input.Reaction, input.Date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save journal entry",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Entry saved",
		"id":      id,
	})
}

// GetEntries godoc
// @Summary List journal entries
// @Description Returns journal entries newest first, optionally within a date range
// @Tags journal
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD, inclusive)"
// @Param end query string false "Range end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal [get]
func (jc *JournalController) GetEntries(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	entries, err := jc.Journal.List(userID, c.Query("start"), c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load journal entries",
		})
	}

	return c.JSON(fiber.Map{
		"entries": entries,
	})
}
