package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

type fakeTransfer struct {
	calls int
	err   error
}

func (f *fakeTransfer) Send(context.Context, string, string, string) error {
	f.calls++
	return f.err
}

type historyRecord struct {
	to, subject, body, status, errMsg string
}

type fakeHistory struct {
	records []historyRecord
	err     error
}

func (f *fakeHistory) Append(to, subject, body, status, errMsg string) error {
	f.records = append(f.records, historyRecord{to, subject, body, status, errMsg})
	return f.err
}

func TestCampaignSendValidationLeavesNoHistory(t *testing.T) {
	transfer := &fakeTransfer{}
	history := &fakeHistory{}
	cs := NewCampaignSender(transfer, history, testLogger())

	for _, args := range [][3]string{
		{"", "s", "b"},
		{"a@x.com", "", "b"},
		{"a@x.com", "s", ""},
		{"  ", " ", " "},
	} {
		err := cs.Send(context.Background(), args[0], args[1], args[2])
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr, "%v", args)
	}
	assert.Zero(t, transfer.calls, "no transfer on validation failure")
	assert.Empty(t, history.records, "no history record when no send was attempted")
}

func TestCampaignSendRecordsSuccess(t *testing.T) {
	transfer := &fakeTransfer{}
	history := &fakeHistory{}
	cs := NewCampaignSender(transfer, history, testLogger())

	require.NoError(t, cs.Send(context.Background(), " a@x.com ", " Hi ", " Hello "))

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, historyRecord{"a@x.com", "Hi", "Hello", models.StatusSent, ""}, rec)
}

func TestCampaignSendRecordsFailureAndSurfacesError(t *testing.T) {
	transfer := &fakeTransfer{err: &models.SendError{Message: "relay refused"}}
	history := &fakeHistory{}
	cs := NewCampaignSender(transfer, history, testLogger())

	err := cs.Send(context.Background(), "a@x.com", "Hi", "Hello")
	var sErr *models.SendError
	require.ErrorAs(t, err, &sErr)

	require.Len(t, history.records, 1)
	assert.Equal(t, models.StatusFailed, history.records[0].status)
	assert.Contains(t, history.records[0].errMsg, "relay refused")
}

func TestCampaignSendSwallowsHistoryFailure(t *testing.T) {
	transfer := &fakeTransfer{}
	history := &fakeHistory{err: errors.New("disk full")}
	cs := NewCampaignSender(transfer, history, testLogger())

	// The operator cares whether the mail went out; logging trouble must
	// not turn a delivered email into a reported failure.
	require.NoError(t, cs.Send(context.Background(), "a@x.com", "Hi", "Hello"))
	assert.Equal(t, 1, transfer.calls)
}
