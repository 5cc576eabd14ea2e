package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/campaign"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/config"
	controller "github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/controllers"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/store"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

// SetupRoutes wires the stores, the campaign engine, and every HTTP
// endpoint onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, log *logrus.Logger) {
	// Stores
	prospectStore := store.NewProspectStore(db)
	templateStore := store.NewTemplateStore(db)
	historyStore := store.NewHistoryStore(db)

	// Collaborator adapters
	cfg := config.AppConfig
	generator := utils.NewOpenAIClient(utils.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	}, log)
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, log)
	sender := utils.NewCampaignSender(mailer, historyStore, log)

	// One shared session, one engine, one hub; single operator.
	session := campaign.NewSession()
	hub := campaign.NewHub()
	engine := campaign.NewEngine(generator, sender, log)
	play := campaign.NewPlayController(engine, session, hub, log)
	auto := campaign.NewAutoController(engine, session, play, hub, log)

	// Controllers
	prospectCtl := controller.NewProspectController(prospectStore, session, log)
	templateCtl := controller.NewTemplateController(templateStore, log)
	historyCtl := controller.NewHistoryController(historyStore, log)
	emailCtl := controller.NewEmailController(generator, sender, log)
	promptCtl := controller.NewPromptController(session, log)
	automationCtl := controller.NewAutomationController(play, auto, session, prospectStore, hub, log)

	api := app.Group("", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Prospect list
	api.Get("/prospect_list", prospectCtl.GetProspectList)
	api.Post("/prospect_list", prospectCtl.SaveProspectList)

	// Templates
	api.Get("/templates", templateCtl.GetTemplates)
	api.Post("/templates", templateCtl.MutateTemplates)

	// Sent history
	api.Get("/history", historyCtl.GetHistory)

	// One-shot drafting and sending
	api.Post("/generate", emailCtl.Generate)
	api.Post("/followup", emailCtl.FollowUp)
	api.Post("/send", emailCtl.Send)

	// Prompt document
	api.Get("/prompt", promptCtl.GetPrompt)
	api.Post("/prompt", promptCtl.SetPrompt)
	api.Post("/prompt/campaign", promptCtl.SetCampaignBody)

	// Play Mode
	api.Post("/play/start", automationCtl.PlayStart)
	api.Post("/play/approve", automationCtl.PlayApprove)
	api.Post("/play/pause", automationCtl.PlayPause)
	api.Post("/play/select", automationCtl.PlaySelect)
	api.Get("/play/status", automationCtl.PlayStatus)

	// Full Automation Queue
	api.Post("/auto/start", automationCtl.AutoStart)
	api.Post("/auto/stop", automationCtl.AutoStop)
	api.Get("/auto/status", automationCtl.AutoStatus)

	// Live status stream
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/automation", websocket.New(automationCtl.HandleAutomationWS))

	log.Info("Routes initialized successfully")
}
