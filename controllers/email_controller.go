package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

// EmailController exposes one-shot drafting and sending, outside of
// any automation mode.
type EmailController struct {
	Generator *utils.OpenAIClient
	Sender    *utils.CampaignSender
	Logger    *logrus.Logger
}

func NewEmailController(generator *utils.OpenAIClient, sender *utils.CampaignSender, logger *logrus.Logger) *EmailController {
	return &EmailController{
		Generator: generator,
		Sender:    sender,
		Logger:    logger,
	}
}

// Generate drafts an email from a full prompt document.
func (ec *EmailController) Generate(c *fiber.Ctx) error {
	var input struct {
		Prompt string `json:"prompt" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Prompt is required", nil)
	}

	draft, err := ec.Generator.Generate(c.Context(), input.Prompt)
	if err != nil {
		return generationErrorResponse(c, err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"email": draft}))
}

// FollowUp drafts a short nudge referencing a previously sent email.
func (ec *EmailController) FollowUp(c *fiber.Ctx) error {
	var input struct {
		To              string `json:"to"`
		ProspectName    string `json:"prospect_name"`
		PreviousSubject string `json:"previous_subject"`
		PreviousBody    string `json:"previous_body"`
		CampaignPrompt  string `json:"campaign_prompt"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	draft, err := ec.Generator.FollowUp(c.Context(), utils.FollowUpRequest{
		To:              input.To,
		ProspectName:    input.ProspectName,
		PreviousSubject: input.PreviousSubject,
		PreviousBody:    input.PreviousBody,
		CampaignPrompt:  input.CampaignPrompt,
	})
	if err != nil {
		return generationErrorResponse(c, err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"email": draft}))
}

// Send dispatches one email immediately. The outcome lands in history
// either way; failures surface to the caller.
func (ec *EmailController) Send(c *fiber.Ctx) error {
	var input struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := ec.Sender.Send(c.Context(), input.To, input.Subject, input.Body); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, vErr.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, err.Error(), nil)
	}

	return c.JSON(utils.SuccessResponse(nil))
}

// generationErrorResponse maps drafting failures onto HTTP statuses:
// bad input is the caller's fault, everything else is the service's.
func generationErrorResponse(c *fiber.Ctx, err error) error {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, vErr.Message, nil)
	}
	var gErr *models.GenerationError
	if errors.As(err, &gErr) {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, gErr.Error(), nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error(), nil)
}
