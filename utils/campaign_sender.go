package utils

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// MailTransfer is the raw relay a CampaignSender delivers through.
type MailTransfer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// HistoryAppender records one send attempt.
type HistoryAppender interface {
	Append(to, subject, body, status, errMsg string) error
}

// CampaignSender couples the mail transfer with the send history:
// every attempted send leaves exactly one history record, successful
// or not. History-store trouble is logged and swallowed so it can
// never mask the actual send result.
type CampaignSender struct {
	Transfer MailTransfer
	History  HistoryAppender
	Logger   *logrus.Logger
}

func NewCampaignSender(transfer MailTransfer, history HistoryAppender, logger *logrus.Logger) *CampaignSender {
	return &CampaignSender{
		Transfer: transfer,
		History:  history,
		Logger:   logger,
	}
}

// Send validates, delivers, and records. Validation failures happen
// before any network call and leave no history record, since no send
// was attempted.
func (cs *CampaignSender) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if to == "" || subject == "" || body == "" {
		return models.NewValidationError("To, subject, and body are required")
	}

	sendErr := cs.Transfer.Send(ctx, to, subject, body)

	status, errMsg := models.StatusSent, ""
	if sendErr != nil {
		status, errMsg = models.StatusFailed, sendErr.Error()
	}
	if histErr := cs.History.Append(to, subject, body, status, errMsg); histErr != nil {
		cs.Logger.WithError(histErr).Warn("could not append send history")
	}

	return sendErr
}
