package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

func delivery(participantID, contact string) Delivery {
	return Delivery{
		ParticipantID: participantID,
		Contact:       contact,
		Message:       output.Message{Subject: "s", Body: "b"},
	}
}

func TestDispatch_Empty(t *testing.T) {
	dispatcher := NewDispatcher(newFakeNotifier())

	report := dispatcher.Dispatch(context.Background(), nil)

	require.Zero(t, report.Sent)
	require.Zero(t, report.Failed)
	require.Empty(t, report.Details)
}

func TestDispatch_AllSettleDespiteFailures(t *testing.T) {
	notifier := newFakeNotifier()
	notifier.failWith["c2"] = errors.New("dm closed")
	dispatcher := NewDispatcher(notifier)

	report := dispatcher.Dispatch(context.Background(), []Delivery{
		delivery("p1", "c1"),
		delivery("p2", "c2"),
		delivery("p3", "c3"),
	})

	require.Equal(t, 2, report.Sent)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Details, 3)

	// Details are indexed by input position, whatever the completion order.
	require.Equal(t, "p1", report.Details[0].ParticipantID)
	require.Equal(t, "sent", report.Details[0].Outcome)
	require.Equal(t, "p2", report.Details[1].ParticipantID)
	require.Equal(t, "failed", report.Details[1].Outcome)
	require.Contains(t, report.Details[1].Reason, "dm closed")
	require.Equal(t, "sent", report.Details[2].Outcome)
}

func TestDispatch_TimeoutMarksUnsettledAsFailed(t *testing.T) {
	notifier := newFakeNotifier()
	gate := make(chan struct{})
	notifier.blocked["c2"] = gate
	defer close(gate)
	dispatcher := NewDispatcher(notifier)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report := dispatcher.Dispatch(ctx, []Delivery{
		delivery("p1", "c1"),
		delivery("p2", "c2"),
	})

	require.Equal(t, 1, report.Sent)
	require.Equal(t, 1, report.Failed)
	require.Equal(t, "sent", report.Details[0].Outcome)
	require.Equal(t, "failed", report.Details[1].Outcome)
	require.Contains(t, report.Details[1].Reason, "timed out")
}

func TestDispatch_TimeoutKeepsCompletedOutcomes(t *testing.T) {
	notifier := newFakeNotifier()
	gate := make(chan struct{})
	notifier.blocked["stuck"] = gate
	defer close(gate)
	dispatcher := NewDispatcher(notifier)

	// Many sends complete well before the deadline while one stays stuck.
	// The expired context must only claim the stuck one; completed sends
	// keep their real outcome.
	deliveries := make([]Delivery, 0, 21)
	for i := 0; i < 20; i++ {
		deliveries = append(deliveries, delivery("p"+strconv.Itoa(i), "c"+strconv.Itoa(i)))
	}
	deliveries = append(deliveries, delivery("p-stuck", "stuck"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	report := dispatcher.Dispatch(ctx, deliveries)

	require.Equal(t, 20, report.Sent)
	require.Equal(t, 1, report.Failed)
	for i := 0; i < 20; i++ {
		require.Equal(t, "sent", report.Details[i].Outcome)
	}
	require.Equal(t, "failed", report.Details[20].Outcome)
	require.Contains(t, report.Details[20].Reason, "timed out")
	require.Len(t, notifier.sentContacts(), 20)
}

func TestDispatch_OneAttemptPerRecipient(t *testing.T) {
	notifier := newFakeNotifier()
	dispatcher := NewDispatcher(notifier)

	report := dispatcher.Dispatch(context.Background(), []Delivery{
		delivery("p1", "c1"),
		delivery("p2", "c2"),
	})

	require.Equal(t, 2, report.Sent)
	require.ElementsMatch(t, []string{"c1", "c2"}, notifier.sentContacts())
}
