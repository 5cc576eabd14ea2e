package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/campaign"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/store"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

type ProspectController struct {
	Store   *store.ProspectStore
	Session *campaign.Session
	Logger  *logrus.Logger
}

func NewProspectController(st *store.ProspectStore, session *campaign.Session, logger *logrus.Logger) *ProspectController {
	return &ProspectController{
		Store:   st,
		Session: session,
		Logger:  logger,
	}
}

// GetProspectList returns the stored raw text plus its parsed prospects.
func (pc *ProspectController) GetProspectList(c *fiber.Ctx) error {
	raw, err := pc.Store.LoadRaw()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load prospect list", err)
	}

	items := campaign.ParseProspectLines(raw)
	pc.Session.SetProspects(items)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"raw":   raw,
		"items": items,
	}))
}

// SaveProspectList replaces the stored raw text wholesale and reloads
// the shared prospect sequence from it.
func (pc *ProspectController) SaveProspectList(c *fiber.Ctx) error {
	var input struct {
		Raw string `json:"raw"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := pc.Store.SaveRaw(input.Raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not save prospect list", err)
	}

	items := campaign.ParseProspectLines(input.Raw)
	pc.Session.SetProspects(items)

	pc.Logger.WithFields(logrus.Fields{
		"parsed":  len(items),
		"dropped": campaign.CountDroppedLines(input.Raw, items),
	}).Info("prospect list saved")

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"items":   items,
		"dropped": campaign.CountDroppedLines(input.Raw, items),
	}))
}
