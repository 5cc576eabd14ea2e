package campaign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// Automation queue states.
const (
	AutoIdle     = "idle"
	AutoRunning  = "running"
	AutoStopping = "stopping"
)

// Hard safety bounds on a queue run. Requests outside these ranges are
// clamped, never rejected.
const (
	MinAutoSends = 1
	MaxAutoSends = 15
	DefaultSends = 15

	MinAutoDelaySeconds     = 2
	MaxAutoDelaySeconds     = 600
	DefaultAutoDelaySeconds = 12
)

// AutoStatus is a snapshot of the queue for status polling.
type AutoStatus struct {
	State        string `json:"state"`
	RunID        string `json:"run_id"`
	Index        int    `json:"index"`
	SentCount    int    `json:"sent_count"`
	MaxSends     int    `json:"max_sends"`
	DelaySeconds int    `json:"delay_seconds"`
	LastMessage  string `json:"last_message"`
}

// AutoController is the unattended automation policy: generate and
// send for each prospect from the cursor onward, bounded by a hard
// send cap and a mandatory inter-send delay, halting on the first
// failure of any kind. Stop requests are honored at the top of each
// iteration and during the delay; an in-flight generate or send is
// never aborted, only not followed by another step.
type AutoController struct {
	mu      sync.Mutex
	engine  *Engine
	session *Session
	play    *PlayController
	hub     *Hub
	logger  *logrus.Logger

	state        string
	runID        string
	sentCount    int
	maxSends     int
	delaySeconds int
	lastMsg      string
	stopCh       chan struct{}
	done         chan struct{}

	// wait is swapped out by tests to avoid real delays.
	wait func(d time.Duration, stop <-chan struct{}) bool
}

func NewAutoController(engine *Engine, session *Session, play *PlayController, hub *Hub, logger *logrus.Logger) *AutoController {
	a := &AutoController{
		engine:  engine,
		session: session,
		play:    play,
		hub:     hub,
		logger:  logger,
		state:   AutoIdle,
		wait:    waitOrStop,
	}
	// Exclusion runs both ways: Start pauses Play before running, and
	// Play refuses the cursor while a run is active.
	play.bindQueue(a.busy)
	return a
}

// busy reports whether a run is active or winding down.
func (a *AutoController) busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state != AutoIdle
}

// waitOrStop sleeps for d unless a stop request arrives first. Returns
// false when stopped.
func waitOrStop(d time.Duration, stop <-chan struct{}) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop:
		return false
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Start launches a queue run in the background. maxSends and
// delaySeconds are clamped to their safety ranges; zero values take
// the defaults. Play Mode is paused first so the two policies never
// share the cursor.
func (a *AutoController) Start(ctx context.Context, maxSends, delaySeconds int) (AutoStatus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != AutoIdle {
		return a.statusLocked(), models.NewValidationError("automation queue is already running")
	}
	if a.session.Len() == 0 {
		return a.statusLocked(), models.NewValidationError("add prospects first")
	}

	// The two controllers must never both hold the cursor.
	a.play.Pause()

	if maxSends == 0 {
		maxSends = DefaultSends
	}
	if delaySeconds == 0 {
		delaySeconds = DefaultAutoDelaySeconds
	}
	a.maxSends = clampInt(maxSends, MinAutoSends, MaxAutoSends)
	a.delaySeconds = clampInt(delaySeconds, MinAutoDelaySeconds, MaxAutoDelaySeconds)

	if a.session.Cursor() < 0 {
		if _, err := a.session.Select(0); err != nil {
			return a.statusLocked(), err
		}
	}

	a.state = AutoRunning
	a.runID = uuid.New().String()
	a.sentCount = 0
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})

	a.logger.WithFields(logrus.Fields{
		"run_id":    a.runID,
		"max_sends": a.maxSends,
		"delay_s":   a.delaySeconds,
		"start_at":  a.session.Cursor(),
	}).Info("automation queue started")

	a.publishLocked(fmt.Sprintf("Auto started. Starting at prospect %d of %d.",
		a.session.Cursor()+1, a.session.Len()), true)

	go a.run(ctx, a.runID, a.stopCh, a.done)

	return a.statusLocked(), nil
}

// Stop requests a cooperative halt. The run exits at its next
// checkpoint; whatever network call is in flight completes naturally.
func (a *AutoController) Stop() AutoStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != AutoRunning {
		return a.statusLocked()
	}
	a.state = AutoStopping
	close(a.stopCh)
	a.publishLocked("Stopping auto...", true)
	return a.statusLocked()
}

// Status returns a snapshot of the queue.
func (a *AutoController) Status() AutoStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusLocked()
}

// Done exposes the completion signal of the current run, for tests and
// graceful shutdown.
func (a *AutoController) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

func (a *AutoController) statusLocked() AutoStatus {
	return AutoStatus{
		State:        a.state,
		RunID:        a.runID,
		Index:        a.session.Cursor(),
		SentCount:    a.sentCount,
		MaxSends:     a.maxSends,
		DelaySeconds: a.delaySeconds,
		LastMessage:  a.lastMsg,
	}
}

func (a *AutoController) run(ctx context.Context, runID string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer a.finish()

	prospects := a.session.Prospects()
	i := a.session.Cursor()
	sent := 0
	delaySec := a.delaySeconds
	delay := time.Duration(delaySec) * time.Second
	maxSends := a.maxSends

	for {
		if stopRequested(stop) || ctx.Err() != nil {
			a.report(runID, "Auto stopped.", true, sent)
			return
		}
		if sent >= maxSends || i >= len(prospects) {
			return
		}

		if _, err := a.session.Select(i); err != nil {
			a.report(runID, "Stopped. "+err.Error(), false, sent)
			return
		}
		a.report(runID, fmt.Sprintf("Working: %s (%d/%d)", prospects[i].Email, i+1, len(prospects)), true, sent)

		if err := a.engine.Prepare(ctx, a.session); err != nil {
			a.report(runID, "Stopped. Generation failed: "+err.Error(), false, sent)
			return
		}

		if err := a.engine.Dispatch(ctx, a.session); err != nil {
			var vErr *models.ValidationError
			if errors.As(err, &vErr) {
				a.report(runID, "Stopped. Missing To, Subject, or Body after generation.", false, sent)
			} else {
				a.report(runID, "Stopped. Send failed: "+err.Error(), false, sent)
			}
			return
		}

		sent++

		if sent >= maxSends {
			a.report(runID, fmt.Sprintf("Done. Sent %d. (Reached max sends)", sent), true, sent)
			return
		}
		if i >= len(prospects)-1 {
			a.report(runID, fmt.Sprintf("Done. Sent %d. (Reached end of list)", sent), true, sent)
			return
		}

		a.report(runID, fmt.Sprintf("Sent %d. Waiting %ds then moving to next...", sent, delaySec), true, sent)
		if !a.wait(delay, stop) {
			a.report(runID, "Auto stopped.", true, sent)
			return
		}

		i++
	}
}

func stopRequested(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

func (a *AutoController) finish() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = AutoIdle
	a.logger.WithFields(logrus.Fields{
		"run_id": a.runID,
		"sent":   a.sentCount,
	}).Info("automation queue finished")
}

// report updates the status line and fans it out to subscribers.
func (a *AutoController) report(runID, msg string, ok bool, sent int) {
	a.mu.Lock()
	a.sentCount = sent
	a.lastMsg = msg
	state := a.state
	index := a.session.Cursor()
	a.mu.Unlock()

	a.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"index":  index,
		"sent":   sent,
	}).Info(msg)
	a.hub.Publish(StatusEvent{
		RunID:     runID,
		Source:    "auto",
		State:     state,
		Message:   msg,
		Index:     index,
		SentCount: sent,
		OK:        ok,
	})
}

func (a *AutoController) publishLocked(msg string, ok bool) {
	a.lastMsg = msg
	a.hub.Publish(StatusEvent{
		RunID:     a.runID,
		Source:    "auto",
		State:     a.state,
		Message:   msg,
		Index:     a.session.Cursor(),
		SentCount: a.sentCount,
		OK:        ok,
	})
}
