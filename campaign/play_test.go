package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

func newPlayFixture(t *testing.T, gen *fakeGenerator, sender *fakeSender) (*PlayController, *Session) {
	t.Helper()
	log := testLogger()
	session := sessionWith(threeProspects()...)
	engine := NewEngine(gen, sender, log)
	return NewPlayController(engine, session, NewHub(), log), session
}

func TestPlayStartRequiresProspects(t *testing.T) {
	log := testLogger()
	play := NewPlayController(NewEngine(&fakeGenerator{}, &fakeSender{}, log), NewSession(), NewHub(), log)

	err := play.Start(context.Background())
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, PlayIdle, play.State())
}

func TestPlayStartGeneratesButDoesNotSend(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "amy@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	play, session := newPlayFixture(t, gen, sender)

	require.NoError(t, play.Start(context.Background()))

	assert.Equal(t, PlayAwaitingApproval, play.State())
	assert.Equal(t, 0, session.Cursor())
	assert.Equal(t, 1, gen.callCount())
	assert.Zero(t, sender.sentCount(), "nothing may dispatch without approval")
	assert.NotEqual(t, models.Draft{}, session.Pending())
}

func TestPlayApproveSendsAndAdvancesExactlyOne(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	play, session := newPlayFixture(t, gen, sender)

	require.NoError(t, play.Start(context.Background()))
	require.NoError(t, play.Approve(context.Background()))

	// One send, cursor advanced one step, next draft staged, and the
	// controller is back to waiting for the operator.
	assert.Equal(t, 1, sender.sentCount())
	assert.Equal(t, 1, session.Cursor())
	assert.Equal(t, 2, gen.callCount())
	assert.Equal(t, PlayAwaitingApproval, play.State())
}

func TestPlayApproveWithoutPreparedDraft(t *testing.T) {
	play, _ := newPlayFixture(t, &fakeGenerator{}, &fakeSender{})

	err := play.Approve(context.Background())
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestPlayStopsCleanlyAtEndOfList(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	play, session := newPlayFixture(t, gen, sender)
	_, err := session.Select(2) // last prospect
	require.NoError(t, err)

	require.NoError(t, play.Start(context.Background()))
	require.NoError(t, play.Approve(context.Background()))

	assert.Equal(t, PlayIdle, play.State())
	assert.Equal(t, 1, sender.sentCount())
	assert.Equal(t, "Sent. Reached end of list. Play Mode stopped.", play.LastMessage())
}

func TestPlayGenerationFailureReturnsToIdle(t *testing.T) {
	gen := &fakeGenerator{err: &models.GenerationError{Message: "model unavailable"}}
	sender := &fakeSender{}
	play, session := newPlayFixture(t, gen, sender)

	err := play.Start(context.Background())
	var gErr *models.GenerationError
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, PlayIdle, play.State())
	assert.Zero(t, sender.sentCount())
	assert.Equal(t, models.Draft{}, session.Pending())
}

func TestPlaySendFailureReturnsToIdle(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{failAt: 1}
	play, session := newPlayFixture(t, gen, sender)

	require.NoError(t, play.Start(context.Background()))
	err := play.Approve(context.Background())
	var sErr *models.SendError
	require.ErrorAs(t, err, &sErr)

	assert.Equal(t, PlayIdle, play.State())
	assert.Equal(t, 0, session.Cursor(), "cursor must not advance past a failed send")
}

func TestPlayPauseIsIdempotent(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	play, session := newPlayFixture(t, gen, &fakeSender{})

	require.NoError(t, play.Start(context.Background()))
	play.Pause()
	play.Pause()

	assert.Equal(t, PlayIdle, play.State())
	assert.Equal(t, models.Draft{}, session.Pending())
}

func TestPlayRefusesCursorWhileQueueRuns(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	sender := &fakeSender{}
	log := testLogger()
	session := sessionWith(threeProspects()...)
	engine := NewEngine(gen, sender, log)
	hub := NewHub()
	play := NewPlayController(engine, session, hub, log)
	auto := NewAutoController(engine, session, play, hub, log)
	waiting := make(chan struct{})
	auto.wait = func(_ time.Duration, stop <-chan struct{}) bool {
		close(waiting)
		<-stop
		return false
	}

	_, err := auto.Start(context.Background(), 15, 2)
	require.NoError(t, err)
	<-waiting

	pendingBefore := session.Pending()
	cursorBefore := session.Cursor()

	var vErr *models.ValidationError
	err = play.Start(context.Background())
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "queue")

	err = play.Approve(context.Background())
	require.ErrorAs(t, err, &vErr)

	_, err = play.SelectIndex(2)
	require.ErrorAs(t, err, &vErr)

	// The run's cursor and staged draft are untouched.
	assert.Equal(t, PlayIdle, play.State())
	assert.Equal(t, cursorBefore, session.Cursor())
	assert.Equal(t, pendingBefore, session.Pending())
	assert.Equal(t, 1, sender.sentCount())

	auto.Stop()
	select {
	case <-auto.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("automation run did not finish in time")
	}

	// Once the queue is idle again, Play Mode works as usual.
	require.NoError(t, play.Start(context.Background()))
	assert.Equal(t, PlayAwaitingApproval, play.State())
}

func TestPlaySelectIndexMovesCursorWithoutGenerating(t *testing.T) {
	gen := &fakeGenerator{draft: models.Draft{To: "x@x.com", Subject: "Hi", Body: "Hello"}}
	play, session := newPlayFixture(t, gen, &fakeSender{})

	prospect, err := play.SelectIndex(2)
	require.NoError(t, err)
	assert.Equal(t, "carl@z.com", prospect.Email)
	assert.Equal(t, 2, session.Cursor())
	assert.Zero(t, gen.callCount())

	_, err = play.SelectIndex(7)
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}
