package sdk

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mdexhq/mdex/pkg/sdk/sdkerr"
)

// Polling defaults. Delay doubles after every pending attempt and is
// capped; the attempt budget bounds how long a stuck job can hold a
// caller.
const (
	DefaultInitialDelay = 500 * time.Millisecond
	DefaultMaxDelay     = 10 * time.Second
	DefaultMaxAttempts  = 50
)

// StatusFunc issues one status request for a background job.
type StatusFunc func(ctx context.Context, responseID string) (*PollStatus, error)

// Poller repeatedly checks a background job until it completes, the
// attempt budget runs out, or a request fails outright.
type Poller struct {
	Status       StatusFunc
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
}

// NewPoller returns a Poller with default timing backed by the SDK's
// status endpoint.
func (s *Sdk) NewPoller() *Poller {
	return &Poller{
		Status:       s.Status,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

type pollOutcome int

const (
	outcomePending pollOutcome = iota
	outcomeCompleted
	outcomeFailed
)

// PollText polls until the job completes and returns the text of its
// output. A completed job with no text yields the empty string.
func (p *Poller) PollText(ctx context.Context, responseID string) (string, error) {
	status, err := p.poll(ctx, responseID)
	if err != nil {
		return "", err
	}
	return outputText(status), nil
}

// PollJSON polls until the job completes and returns its output parsed as
// JSON. A completed job with no text yields an empty object; text that is
// not valid JSON is a hard failure.
func (p *Poller) PollJSON(ctx context.Context, responseID string) (json.RawMessage, error) {
	text, err := p.PollText(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid([]byte(text)) {
		return nil, sdkerr.Newf(sdkerr.CodeBadPayload, "completed output is not valid JSON")
	}
	return json.RawMessage(text), nil
}

// poll runs the attempt loop. Each attempt classifies the status response
// as pending, completed, or failed; only pending continues the loop.
func (p *Poller) poll(ctx context.Context, responseID string) (*PollStatus, error) {
	delay := p.InitialDelay
	if delay <= 0 {
		delay = DefaultInitialDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		status, err := p.Status(ctx, responseID)

		var outcome pollOutcome
		switch {
		case err != nil:
			outcome = outcomeFailed
		case status.Completed:
			outcome = outcomeCompleted
		default:
			outcome = outcomePending
		}

		switch outcome {
		case outcomeCompleted:
			return status, nil
		case outcomeFailed:
			// A transport or controller failure is not retried.
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	return nil, sdkerr.Newf(sdkerr.CodePollTimeout, "job %s still pending after %d attempts", responseID, attempts)
}

// outputText selects the text of a completed job's output: the assistant
// message's first content element when one exists, otherwise the first
// record's.
func outputText(status *PollStatus) string {
	if status == nil || len(status.Output) == 0 {
		return ""
	}
	record := status.Output[0]
	for _, item := range status.Output {
		if item.Role == "assistant" {
			record = item
			break
		}
	}
	if len(record.Content) == 0 {
		return ""
	}
	return record.Content[0].Text
}
