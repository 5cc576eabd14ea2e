package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

func newAutoFixture(t *testing.T, gen *fakeGenerator, sender *fakeSender) (*AutoController, *Session) {
	t.Helper()
	log := testLogger()
	session := sessionWith(threeProspects()...)
	engine := NewEngine(gen, sender, log)
	hub := NewHub()
	play := NewPlayController(engine, session, hub, log)
	auto := NewAutoController(engine, session, play, hub, log)
	auto.wait = func(time.Duration, <-chan struct{}) bool { return true }
	return auto, session
}

func waitDone(t *testing.T, auto *AutoController) {
	t.Helper()
	select {
	case <-auto.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("automation run did not finish in time")
	}
}

func TestAutoStopsAtMaxSends(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	auto, session := newAutoFixture(t, gen, sender)

	_, err := auto.Start(context.Background(), 2, 2)
	require.NoError(t, err)
	waitDone(t, auto)

	status := auto.Status()
	assert.Equal(t, AutoIdle, status.State)
	assert.Equal(t, 2, status.SentCount)
	assert.Equal(t, 2, sender.sentCount())
	assert.Equal(t, 1, session.Cursor(), "cursor stays on the last prospect processed")
	assert.Equal(t, "Done. Sent 2. (Reached max sends)", status.LastMessage)
}

func TestAutoStopsAtEndOfList(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	auto, _ := newAutoFixture(t, gen, sender)

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	waitDone(t, auto)

	status := auto.Status()
	assert.Equal(t, 3, status.SentCount)
	assert.Equal(t, "Done. Sent 3. (Reached end of list)", status.LastMessage)
}

func TestAutoStartsFromSelectedProspect(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	auto, session := newAutoFixture(t, gen, sender)
	_, err := session.Select(1)
	require.NoError(t, err)

	status, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	assert.Equal(t, "Auto started. Starting at prospect 2 of 3.", status.LastMessage)
	waitDone(t, auto)

	assert.Equal(t, 2, sender.sentCount(), "only prospects from the cursor onward are processed")
}

func TestAutoHaltsOnSendFailure(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{failAt: 2}
	auto, _ := newAutoFixture(t, gen, sender)

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	waitDone(t, auto)

	status := auto.Status()
	assert.Equal(t, AutoIdle, status.State)
	assert.Equal(t, 1, status.SentCount, "sends before the failure still count")
	assert.Equal(t, 1, sender.sentCount())
	assert.Contains(t, status.LastMessage, "Stopped. Send failed:")
}

func TestAutoHaltsOnGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: &models.GenerationError{Message: "model unavailable"}}
	sender := &fakeSender{}
	auto, _ := newAutoFixture(t, gen, sender)

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	waitDone(t, auto)

	status := auto.Status()
	assert.Zero(t, status.SentCount)
	assert.Zero(t, sender.sentCount())
	assert.Contains(t, status.LastMessage, "Stopped. Generation failed:")
}

func TestAutoHaltsOnIncompleteDraft(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi"}} // no body
	sender := &fakeSender{}
	auto, _ := newAutoFixture(t, gen, sender)

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	waitDone(t, auto)

	status := auto.Status()
	assert.Zero(t, status.SentCount)
	assert.Zero(t, sender.sentCount())
	assert.Equal(t, "Stopped. Missing To, Subject, or Body after generation.", status.LastMessage)
}

func TestAutoClampsLimits(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	auto, _ := newAutoFixture(t, gen, &fakeSender{})

	status, err := auto.Start(context.Background(), 100, 10000)
	require.NoError(t, err)
	assert.Equal(t, MaxAutoSends, status.MaxSends)
	assert.Equal(t, MaxAutoDelaySeconds, status.DelaySeconds)
	waitDone(t, auto)
}

func TestAutoZeroValuesTakeDefaults(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	auto, _ := newAutoFixture(t, gen, &fakeSender{})

	status, err := auto.Start(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSends, status.MaxSends)
	assert.Equal(t, DefaultAutoDelaySeconds, status.DelaySeconds)
	waitDone(t, auto)
}

func TestAutoRejectsConcurrentRun(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	auto, _ := newAutoFixture(t, gen, &fakeSender{})
	started := make(chan struct{})
	auto.wait = func(_ time.Duration, stop <-chan struct{}) bool {
		close(started)
		<-stop
		return false
	}

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	<-started

	_, err = auto.Start(context.Background(), 15, 2)
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)

	auto.Stop()
	waitDone(t, auto)
}

func TestAutoStopDuringDelay(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	auto, _ := newAutoFixture(t, gen, sender)
	waiting := make(chan struct{})
	auto.wait = func(_ time.Duration, stop <-chan struct{}) bool {
		close(waiting)
		<-stop
		return false
	}

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	<-waiting

	status := auto.Stop()
	assert.Equal(t, AutoStopping, status.State)
	waitDone(t, auto)

	status = auto.Status()
	assert.Equal(t, AutoIdle, status.State)
	assert.Equal(t, 1, status.SentCount)
	assert.Equal(t, "Auto stopped.", status.LastMessage)
}

func TestAutoRequiresProspects(t *testing.T) {
	log := testLogger()
	session := NewSession()
	engine := NewEngine(&fakeGenerator{}, &fakeSender{}, log)
	hub := NewHub()
	play := NewPlayController(engine, session, hub, log)
	auto := NewAutoController(engine, session, play, hub, log)

	_, err := auto.Start(context.Background(), 15, 2)
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestAutoPausesPlayMode(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	log := testLogger()
	session := sessionWith(threeProspects()...)
	engine := NewEngine(gen, sender, log)
	hub := NewHub()
	play := NewPlayController(engine, session, hub, log)
	auto := NewAutoController(engine, session, play, hub, log)
	auto.wait = func(time.Duration, <-chan struct{}) bool { return true }

	require.NoError(t, play.Start(context.Background()))
	require.Equal(t, PlayAwaitingApproval, play.State())

	_, err := auto.Start(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, PlayIdle, play.State())
	waitDone(t, auto)
}
