package dispatch_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchurch/campaign-service/internal/dispatch"
	"github.com/openchurch/campaign-service/internal/model"
)

// fakeSender fails for recipients whose key is listed in failKeys and tracks
// how many sends run at once.
type fakeSender struct {
	failKeys map[string]bool
	delay    time.Duration

	inflight    int32
	maxInflight int32

	mu     sync.Mutex
	bodies map[string]string
}

func newFakeSender() *fakeSender {
	return &fakeSender{failKeys: map[string]bool{}, bodies: map[string]string{}}
}

func (f *fakeSender) Send(ctx context.Context, to model.Contact, msg dispatch.Message) error {
	cur := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		max := atomic.LoadInt32(&f.maxInflight)
		if cur <= max || atomic.CompareAndSwapInt32(&f.maxInflight, max, cur) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	f.bodies[to.Key()] = msg.Body
	f.mu.Unlock()

	if f.failKeys[to.Key()] {
		return fmt.Errorf("provider rejected %s", to.Key())
	}
	return nil
}

type memoryResultRepo struct {
	mu      sync.Mutex
	results []model.DispatchResult
}

func (m *memoryResultRepo) Insert(res *model.DispatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res.ID = len(m.results) + 1
	m.results = append(m.results, *res)
	return nil
}

func (m *memoryResultRepo) ListByCampaign(campaignID int) ([]model.DispatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.DispatchResult{}
	for _, r := range m.results {
		if r.CampaignID == campaignID {
			out = append(out, r)
		}
	}
	return out, nil
}

func recipients(n int) []model.Contact {
	out := make([]model.Contact, n)
	for i := range out {
		out[i] = model.Contact{
			FirstName: fmt.Sprintf("User%d", i),
			Email:     fmt.Sprintf("user%d@test.com", i),
		}
	}
	return out
}

func TestDispatchCountsAndResults(t *testing.T) {
	sender := newFakeSender()
	sender.failKeys["user1@test.com"] = true
	sender.failKeys["user3@test.com"] = true
	repo := &memoryResultRepo{}

	d := dispatch.NewDispatcher(
		map[string]dispatch.Sender{model.ChannelEmail: sender},
		repo, 3, time.Second,
	)

	campaign := &model.Campaign{ID: 7, Channel: model.ChannelEmail, Title: "Invitation", Body: "Bonjour {prenom}"}
	summary, err := d.Dispatch(context.Background(), campaign, recipients(5), "batch-1")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.SuccessCount)
	assert.Equal(t, 2, summary.FailCount)

	results, _ := repo.ListByCampaign(7)
	require.Len(t, results, 5)
	for _, res := range results {
		assert.Equal(t, "batch-1", res.BatchID)
		assert.Equal(t, model.ChannelEmail, res.Channel)
		if sender.failKeys[res.RecipientKey] {
			assert.Equal(t, model.OutcomeFailed, res.Outcome)
			assert.NotEmpty(t, res.Error)
		} else {
			assert.Equal(t, model.OutcomeSuccess, res.Outcome)
			assert.Empty(t, res.Error)
		}
	}

	// Each body was rendered per recipient.
	assert.Equal(t, "Bonjour User0", sender.bodies["user0@test.com"])
	assert.Equal(t, "Bonjour User4", sender.bodies["user4@test.com"])
}

func TestDispatchAllFailuresStillCompletes(t *testing.T) {
	sender := newFakeSender()
	recs := recipients(4)
	for _, r := range recs {
		sender.failKeys[r.Key()] = true
	}

	d := dispatch.NewDispatcher(
		map[string]dispatch.Sender{model.ChannelEmail: sender},
		&memoryResultRepo{}, 2, time.Second,
	)

	summary, err := d.Dispatch(context.Background(), &model.Campaign{ID: 1, Channel: model.ChannelEmail}, recs, "b")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SuccessCount)
	assert.Equal(t, 4, summary.FailCount)
}

func TestDispatchBoundedConcurrency(t *testing.T) {
	sender := newFakeSender()
	sender.delay = 20 * time.Millisecond

	workers := 3
	d := dispatch.NewDispatcher(
		map[string]dispatch.Sender{model.ChannelEmail: sender},
		&memoryResultRepo{}, workers, time.Second,
	)

	_, err := d.Dispatch(context.Background(), &model.Campaign{ID: 1, Channel: model.ChannelEmail}, recipients(12), "b")
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&sender.maxInflight), int32(workers))
}

func TestDispatchTimeoutIsFailedResult(t *testing.T) {
	sender := newFakeSender()
	sender.delay = 200 * time.Millisecond
	repo := &memoryResultRepo{}

	d := dispatch.NewDispatcher(
		map[string]dispatch.Sender{model.ChannelEmail: sender},
		repo, 2, 10*time.Millisecond,
	)

	summary, err := d.Dispatch(context.Background(), &model.Campaign{ID: 2, Channel: model.ChannelEmail}, recipients(2), "b")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SuccessCount)
	assert.Equal(t, 2, summary.FailCount)

	results, _ := repo.ListByCampaign(2)
	for _, res := range results {
		assert.Contains(t, res.Error, "context deadline exceeded")
	}
}

func TestDispatchUnknownChannel(t *testing.T) {
	d := dispatch.NewDispatcher(map[string]dispatch.Sender{}, &memoryResultRepo{}, 2, time.Second)
	_, err := d.Dispatch(context.Background(), &model.Campaign{Channel: model.ChannelSMS}, recipients(1), "b")
	assert.Error(t, err)
	assert.False(t, d.Supports(model.ChannelSMS))
}
