package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/store"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

type HistoryController struct {
	Store  *store.HistoryStore
	Logger *logrus.Logger
}

func NewHistoryController(st *store.HistoryStore, logger *logrus.Logger) *HistoryController {
	return &HistoryController{
		Store:  st,
		Logger: logger,
	}
}

// GetHistory returns send records newest first. The limit query param
// is clamped by the store.
func (hc *HistoryController) GetHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	records, err := hc.Store.Read(limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load history", err)
	}

	items := make([]fiber.Map, 0, len(records))
	for _, r := range records {
		items = append(items, fiber.Map{
			"ts":      r.Timestamp(),
			"to":      r.To,
			"subject": r.Subject,
			"body":    r.Body,
			"status":  r.Status,
			"error":   r.Error,
		})
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"items": items}))
}
