package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/store"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

type TemplateController struct {
	Store  *store.TemplateStore
	Logger *logrus.Logger
}

func NewTemplateController(st *store.TemplateStore, logger *logrus.Logger) *TemplateController {
	return &TemplateController{
		Store:  st,
		Logger: logger,
	}
}

// GetTemplates lists saved campaign prompts, newest names first.
func (tc *TemplateController) GetTemplates(c *fiber.Ctx) error {
	items, err := tc.Store.List()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load templates", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"items": items}))
}

// MutateTemplates saves or deletes a template depending on the action
// field, returning the refreshed list either way.
func (tc *TemplateController) MutateTemplates(c *fiber.Ctx) error {
	var input struct {
		Action string `json:"action"`
		Name   string `json:"name"`
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	var (
		items []models.Template
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(input.Action)) {
	case "save":
		items, err = tc.Store.Upsert(input.Name, input.Prompt)
	case "delete":
		items, err = tc.Store.Delete(input.Name)
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid action", nil)
	}

	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, vErr.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Template operation failed", err)
	}

	tc.Logger.WithFields(logrus.Fields{
		"action": input.Action,
		"name":   input.Name,
	}).Info("template mutated")

	return c.JSON(utils.SuccessResponse(fiber.Map{"items": items}))
}
