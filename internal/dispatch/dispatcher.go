// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

// Summary is the per-batch outcome returned to the caller of send().
type Summary struct {
	SuccessCount int `json:"success_count"`
	FailCount    int `json:"fail_count"`
}

// Dispatcher fans a campaign out to per-recipient sends through the channel
// adapters. Concurrency is bounded by a fixed-size worker pool so provider
// rate limits are respected; a failure for one recipient never aborts the
// batch.
type Dispatcher struct {
	Senders map[string]Sender
	Results repository.DispatchResultRepositoryInterface
	Workers int
	Timeout time.Duration
}

func NewDispatcher(senders map[string]Sender, results repository.DispatchResultRepositoryInterface, workers int, timeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		Senders: senders,
		Results: results,
		Workers: workers,
		Timeout: timeout,
	}
}

// Supports reports whether an adapter is configured for the channel.
func (d *Dispatcher) Supports(channel string) bool {
	_, ok := d.Senders[channel]
	return ok
}

// Dispatch sends the campaign body to every recipient and records one
// DispatchResult per recipient. It always runs to completion and returns the
// success/fail counts, even when every individual send fails.
func (d *Dispatcher) Dispatch(ctx context.Context, campaign *model.Campaign, recipients []model.Contact, batchID string) (*Summary, error) {
	sender, ok := d.Senders[campaign.Channel]
	if !ok {
		return nil, fmt.Errorf("no sender configured for channel %q", campaign.Channel)
	}

	jobs := make(chan model.Contact)
	results := make(chan model.DispatchResult)

	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for recipient := range jobs {
				results <- d.sendOne(ctx, sender, campaign, recipient, batchID)
			}
		}()
	}

	go func() {
		for _, r := range recipients {
			jobs <- r
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	summary := &Summary{}
	for res := range results {
		if res.Outcome == model.OutcomeSuccess {
			summary.SuccessCount++
		} else {
			summary.FailCount++
		}
		if err := d.Results.Insert(&res); err != nil {
			log.Println("⚠️ failed to persist dispatch result:", err)
		}
	}

	return summary, nil
}

// sendOne renders and sends to a single recipient under the per-call timeout.
// A timeout is a failed result for that recipient, never a stalled batch.
func (d *Dispatcher) sendOne(ctx context.Context, sender Sender, campaign *model.Campaign, recipient model.Contact, batchID string) model.DispatchResult {
	callCtx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	msg := Message{
		Subject:    campaign.Title,
		Body:       RenderBody(campaign.Body, recipient),
		ImageURL:   campaign.ImageURL,
		TemplateID: campaign.TemplateID,
	}

	res := model.DispatchResult{
		CampaignID:   campaign.ID,
		BatchID:      batchID,
		RecipientKey: recipient.Key(),
		Channel:      campaign.Channel,
		Outcome:      model.OutcomeSuccess,
		Timestamp:    time.Now(),
	}
	if err := sender.Send(callCtx, recipient, msg); err != nil {
		res.Outcome = model.OutcomeFailed
		res.Error = err.Error()
	}
	return res
}
