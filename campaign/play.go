package campaign

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// Play Mode states.
const (
	PlayIdle             = "idle"
	PlayAwaitingApproval = "awaiting_approval"
)

// PlayController is the manual-approval automation policy: generate
// for the current prospect, hold until the operator approves, send,
// then advance and generate again. Every send requires an explicit
// approval; nothing dispatches on its own.
type PlayController struct {
	mu      sync.Mutex
	engine  *Engine
	session *Session
	hub     *Hub
	logger  *logrus.Logger
	state   string
	lastMsg string

	// queueBusy reports whether the automation queue holds the cursor.
	// Set by the queue controller at construction.
	queueBusy func() bool
}

// bindQueue registers the queue-activity check. While it reports true,
// Start, Approve, and SelectIndex refuse to touch the shared cursor.
func (p *PlayController) bindQueue(busy func() bool) {
	p.queueBusy = busy
}

// guardQueue runs outside p.mu: the queue pauses Play under its own
// lock first, so nesting the locks here would invert that order.
func (p *PlayController) guardQueue() error {
	if p.queueBusy != nil && p.queueBusy() {
		return models.NewValidationError("automation queue is running")
	}
	return nil
}

func NewPlayController(engine *Engine, session *Session, hub *Hub, logger *logrus.Logger) *PlayController {
	return &PlayController{
		engine:  engine,
		session: session,
		hub:     hub,
		logger:  logger,
		state:   PlayIdle,
	}
}

// Start begins a cycle for the current prospect (index 0 when none is
// selected): generate only, then wait for approval. A generation
// failure drops straight back to idle.
func (p *PlayController) Start(ctx context.Context) error {
	if err := p.guardQueue(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session.Len() == 0 {
		return models.NewValidationError("add prospects first")
	}
	if p.session.Cursor() < 0 {
		if _, err := p.session.Select(0); err != nil {
			return err
		}
	}

	return p.prepareLocked(ctx)
}

// prepareLocked runs the generation half of a cycle and moves to
// awaiting_approval. Caller holds p.mu.
func (p *PlayController) prepareLocked(ctx context.Context) error {
	p.state = PlayIdle
	p.session.ClearPending()

	if err := p.engine.Prepare(ctx, p.session); err != nil {
		p.publishLocked("Stopped. Generation failed: "+err.Error(), false)
		return err
	}

	p.state = PlayAwaitingApproval
	p.publishLocked("Ready. Approve to send.", true)
	return nil
}

// Approve dispatches the pending draft. On success it either stops at
// the end of the list or advances one prospect and generates the next
// draft. On send failure it returns to idle; retrying is the
// operator's call.
func (p *PlayController) Approve(ctx context.Context) error {
	if err := p.guardQueue(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PlayAwaitingApproval {
		return models.NewValidationError("generate first, then approve")
	}

	if err := p.engine.Dispatch(ctx, p.session); err != nil {
		p.state = PlayIdle
		p.publishLocked("Send failed: "+err.Error(), false)
		return err
	}

	if p.session.AtEnd() {
		p.state = PlayIdle
		p.publishLocked("Sent. Reached end of list. Play Mode stopped.", true)
		return nil
	}

	if _, err := p.session.Select(p.session.Cursor() + 1); err != nil {
		p.state = PlayIdle
		return err
	}
	return p.prepareLocked(ctx)
}

// Pause clears any pending approval and returns to idle. Safe to call
// in any state, any number of times.
func (p *PlayController) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = PlayIdle
	p.session.ClearPending()
	p.publishLocked("Play Mode paused.", true)
}

// SelectIndex moves the cursor without generating anything; the next
// Start acts on the newly selected prospect.
func (p *PlayController) SelectIndex(index int) (models.Prospect, error) {
	if err := p.guardQueue(); err != nil {
		return models.Prospect{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	prospect, err := p.session.Select(index)
	if err != nil {
		return models.Prospect{}, err
	}
	p.state = PlayIdle
	p.session.ClearPending()
	return prospect, nil
}

// State returns the current Play Mode state name.
func (p *PlayController) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastMessage returns the most recent status line.
func (p *PlayController) LastMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastMsg
}

func (p *PlayController) publishLocked(msg string, ok bool) {
	p.lastMsg = msg
	p.logger.WithFields(logrus.Fields{
		"state": p.state,
		"index": p.session.Cursor(),
	}).Info(msg)
	p.hub.Publish(StatusEvent{
		Source:  "play",
		State:   p.state,
		Message: msg,
		Index:   p.session.Cursor(),
		OK:      ok,
	})
}
