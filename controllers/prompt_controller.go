package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/campaign"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

// PromptController exposes the shared prompt document: the recipient
// header the controllers maintain and the campaign body the operator
// edits or loads from a template.
type PromptController struct {
	Session *campaign.Session
	Logger  *logrus.Logger
}

func NewPromptController(session *campaign.Session, logger *logrus.Logger) *PromptController {
	return &PromptController{
		Session: session,
		Logger:  logger,
	}
}

// GetPrompt returns the document plus its decoded parts.
func (pc *PromptController) GetPrompt(c *fiber.Ctx) error {
	doc := pc.Session.Document()
	email, name := campaign.RecipientHeader(doc)
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"document":        doc,
		"recipient_email": email,
		"prospect_name":   name,
		"campaign_prompt": campaign.CampaignBody(doc),
	}))
}

// SetPrompt replaces the whole document.
func (pc *PromptController) SetPrompt(c *fiber.Ctx) error {
	var input struct {
		Document string `json:"document"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	pc.Session.SetDocument(input.Document)
	return c.JSON(utils.SuccessResponse(fiber.Map{"document": pc.Session.Document()}))
}

// SetCampaignBody swaps only the campaign portion, e.g. when a saved
// template is loaded; recipient lines stay as they are.
func (pc *PromptController) SetCampaignBody(c *fiber.Ctx) error {
	var input struct {
		Campaign string `json:"campaign"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	pc.Session.SetCampaignBody(input.Campaign)
	return c.JSON(utils.SuccessResponse(fiber.Map{"document": pc.Session.Document()}))
}
