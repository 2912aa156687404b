package application

import (
	"context"

	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/input"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

// Delivery is one resolved recipient with its already-composed message.
type Delivery struct {
	ParticipantID string
	Contact       string
	Message       output.Message
}

// Dispatcher fans deliveries out concurrently and settles every attempt.
// One attempt per recipient per call; a failure never aborts siblings.
type Dispatcher struct {
	notifier output.Notifier
}

// NewDispatcher creates a Dispatcher over the given notifier.
func NewDispatcher(notifier output.Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

type sendResult struct {
	index    int
	err      error
	timedOut bool
}

// Dispatch sends every delivery concurrently and waits for all attempts to
// settle. Outcomes are indexed by input position, so the report never depends
// on completion order. Each task watches ctx on its own: a send that has not
// settled when ctx expires is reported as failed with a timeout reason, while
// sends that already completed keep their real outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, deliveries []Delivery) input.NotificationReport {
	report := input.NotificationReport{
		Details: make([]input.DeliveryOutcome, len(deliveries)),
	}
	if len(deliveries) == 0 {
		report.Details = nil
		return report
	}

	results := make(chan sendResult, len(deliveries))
	for i := range deliveries {
		go func(i int, dv Delivery) {
			sent := make(chan error, 1)
			go func() {
				sent <- d.notifier.Send(ctx, dv.Contact, dv.Message)
			}()
			select {
			case err := <-sent:
				results <- sendResult{index: i, err: err}
			case <-ctx.Done():
				results <- sendResult{index: i, timedOut: true}
			}
		}(i, deliveries[i])
	}

	for range deliveries {
		res := <-results
		detail := input.DeliveryOutcome{
			ParticipantID: deliveries[res.index].ParticipantID,
			Contact:       deliveries[res.index].Contact,
			Outcome:       "sent",
		}
		switch {
		case res.timedOut:
			detail.Outcome = "failed"
			detail.Reason = "timed out: " + ctx.Err().Error()
			report.Failed++
		case res.err != nil:
			detail.Outcome = "failed"
			detail.Reason = res.err.Error()
			report.Failed++
		default:
			report.Sent++
		}
		report.Details[res.index] = detail
	}
	return report
}
