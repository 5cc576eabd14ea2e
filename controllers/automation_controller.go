package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/campaign"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/store"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

// AutomationController drives the two automation policies over the
// shared session: manual-approval Play Mode and the bounded
// full-automation queue.
type AutomationController struct {
	Play      *campaign.PlayController
	Auto      *campaign.AutoController
	Session   *campaign.Session
	Prospects *store.ProspectStore
	Hub       *campaign.Hub
	Logger    *logrus.Logger
}

func NewAutomationController(play *campaign.PlayController, auto *campaign.AutoController, session *campaign.Session, prospects *store.ProspectStore, hub *campaign.Hub, logger *logrus.Logger) *AutomationController {
	return &AutomationController{
		Play:      play,
		Auto:      auto,
		Session:   session,
		Prospects: prospects,
		Hub:       hub,
		Logger:    logger,
	}
}

// ensureProspects lazily loads the prospect sequence from the store
// when an automation mode starts before any list request touched it.
func (ac *AutomationController) ensureProspects() error {
	if ac.Session.Len() > 0 {
		return nil
	}
	raw, err := ac.Prospects.LoadRaw()
	if err != nil {
		return err
	}
	ac.Session.SetProspects(campaign.ParseProspectLines(raw))
	return nil
}

// PlayStart begins a manual-approval cycle for the current prospect.
func (ac *AutomationController) PlayStart(c *fiber.Ctx) error {
	if err := ac.ensureProspects(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load prospect list", err)
	}

	if err := ac.Play.Start(c.Context()); err != nil {
		return automationErrorResponse(c, err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"state":   ac.Play.State(),
		"index":   ac.Session.Cursor(),
		"pending": ac.Session.Pending(),
	}))
}

// PlayApprove dispatches the pending draft and auto-advances.
func (ac *AutomationController) PlayApprove(c *fiber.Ctx) error {
	if err := ac.Play.Approve(c.Context()); err != nil {
		return automationErrorResponse(c, err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"state":   ac.Play.State(),
		"index":   ac.Session.Cursor(),
		"pending": ac.Session.Pending(),
		"message": ac.Play.LastMessage(),
	}))
}

// PlayPause clears any pending approval. Idempotent.
func (ac *AutomationController) PlayPause(c *fiber.Ctx) error {
	ac.Play.Pause()
	return c.JSON(utils.SuccessResponse(fiber.Map{"state": ac.Play.State()}))
}

// PlaySelect moves the cursor without generating.
func (ac *AutomationController) PlaySelect(c *fiber.Ctx) error {
	var input struct {
		Index int `json:"index"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := ac.ensureProspects(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load prospect list", err)
	}

	prospect, err := ac.Play.SelectIndex(input.Index)
	if err != nil {
		return automationErrorResponse(c, err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"index":    input.Index,
		"prospect": prospect,
	}))
}

// PlayStatus reports the Play Mode state machine.
func (ac *AutomationController) PlayStatus(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"state":   ac.Play.State(),
		"index":   ac.Session.Cursor(),
		"pending": ac.Session.Pending(),
		"message": ac.Play.LastMessage(),
	}))
}

// AutoStart launches the bounded unattended queue.
func (ac *AutomationController) AutoStart(c *fiber.Ctx) error {
	var input struct {
		MaxSends     int `json:"max_sends"`
		DelaySeconds int `json:"delay_seconds"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := ac.ensureProspects(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load prospect list", err)
	}

	// The run outlives this request, so it cannot borrow the request
	// context; stopping goes through Auto.Stop.
	status, err := ac.Auto.Start(context.Background(), input.MaxSends, input.DelaySeconds)
	if err != nil {
		return automationErrorResponse(c, err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"status": status}))
}

// AutoStop requests a cooperative halt of the running queue.
func (ac *AutomationController) AutoStop(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(fiber.Map{"status": ac.Auto.Stop()}))
}

// AutoStatus reports the queue snapshot.
func (ac *AutomationController) AutoStatus(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(fiber.Map{"status": ac.Auto.Status()}))
}

// HandleAutomationWS streams controller status events to a websocket
// client until it disconnects.
func (ac *AutomationController) HandleAutomationWS(conn *websocket.Conn) {
	defer conn.Close()

	events, cancel := ac.Hub.Subscribe()
	defer cancel()

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			ac.Logger.WithError(err).Debug("automation ws client gone")
			return
		}
	}
}

func automationErrorResponse(c *fiber.Ctx, err error) error {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, vErr.Message, nil)
	}
	return utils.ErrorResponse(c, fiber.StatusBadGateway, err.Error(), nil)
}
