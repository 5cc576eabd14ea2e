package campaign

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// Generator produces a draft email from a prompt document.
type Generator interface {
	Generate(ctx context.Context, prompt string) (models.Draft, error)
}

// Sender performs a blocking mail transfer and records the outcome to
// history. A returned error means the transfer failed; the history
// record for the attempt exists either way.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Engine runs the generate/validate/send cycle both automation modes
// share. Failures at any step halt the calling controller; there is no
// retry and no skipping to the next prospect.
type Engine struct {
	Generator Generator
	Sender    Sender
	Logger    *logrus.Logger
}

func NewEngine(generator Generator, sender Sender, logger *logrus.Logger) *Engine {
	return &Engine{
		Generator: generator,
		Sender:    sender,
		Logger:    logger,
	}
}

// Prepare runs the generation half of the cycle for the prospect under
// the cursor: merge its recipient lines into the document, generate,
// and stage the draft as pending. Play Mode stops here and waits for
// approval; the automation queue dispatches immediately after.
func (e *Engine) Prepare(ctx context.Context, s *Session) error {
	p, ok := s.Current()
	if !ok {
		return models.NewValidationError("no prospect selected")
	}

	s.SetDocument(MergeRecipient(s.Document(), p.Email, p.Name))

	draft, err := e.Generator.Generate(ctx, s.Document())
	if err != nil {
		s.ClearPending()
		e.Logger.WithFields(logrus.Fields{
			"email": p.Email,
			"index": s.Cursor(),
		}).WithError(err).Warn("generation failed")
		return err
	}

	s.SetPending(draft)
	e.Logger.WithFields(logrus.Fields{
		"to":      draft.To,
		"subject": draft.Subject,
	}).Info("draft ready")
	return nil
}

// Dispatch sends the pending draft. The draft is re-validated first:
// a generation round can legally leave fields empty, and an empty To
// must never reach the mail transfer.
func (e *Engine) Dispatch(ctx context.Context, s *Session) error {
	draft := s.Pending()
	draft.To = strings.TrimSpace(draft.To)
	draft.Subject = strings.TrimSpace(draft.Subject)
	draft.Body = strings.TrimSpace(draft.Body)

	if !draft.IsComplete() {
		return models.NewValidationError("missing To, Subject, or Body after generation")
	}

	if err := e.Sender.Send(ctx, draft.To, draft.Subject, draft.Body); err != nil {
		e.Logger.WithField("to", draft.To).WithError(err).Warn("send failed")
		return err
	}

	s.ClearPending()
	e.Logger.WithField("to", draft.To).Info("sent")
	return nil
}

// RunCycle is the full unattended step: generate, validate, send.
func (e *Engine) RunCycle(ctx context.Context, s *Session) error {
	if err := e.Prepare(ctx, s); err != nil {
		return err
	}
	return e.Dispatch(ctx, s)
}
