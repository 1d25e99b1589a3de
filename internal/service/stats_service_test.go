package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openchurch/campaign-service/internal/cache"
	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/events"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/service"
)

// countingRSVPRepo tracks how often the stats query runs.
type countingRSVPRepo struct {
	*MockRSVPRepo
	statsCalls int
}

func (c *countingRSVPRepo) Stats(campaignID int) (*model.RSVPStats, error) {
	c.statsCalls++
	return c.MockRSVPRepo.Stats(campaignID)
}

func TestComputeStatsUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	statsCache := cache.NewStatsCacheFromClient(
		redis.NewClient(&redis.Options{Addr: mr.Addr()}), 30*time.Second)

	campaigns := NewMockCampaignRepo()
	rsvps := &countingRSVPRepo{MockRSVPRepo: NewMockRSVPRepo()}
	c := rsvpCampaign(campaigns, true)

	rsvpSvc := &service.RSVPService{
		CampaignRepo: campaigns,
		RSVPRepo:     rsvps,
		Cache:        statsCache,
		Events:       events.NoopPublisher{},
	}
	statsSvc := &service.StatsService{
		CampaignRepo: campaigns,
		RSVPRepo:     rsvps,
		Cache:        statsCache,
	}

	ctx := context.Background()
	rsvpSvc.RecordResponse(ctx, c.ID, model.Contact{Email: "a@test.com"}, model.RSVPYes)

	first, err := statsSvc.ComputeStats(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := statsSvc.ComputeStats(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rsvps.statsCalls != 1 {
		t.Errorf("expected the second read to be served from cache, got %d queries", rsvps.statsCalls)
	}
	if *first != *second {
		t.Errorf("cache returned different stats: %+v vs %+v", first, second)
	}

	// A new submission invalidates the cached entry.
	rsvpSvc.RecordResponse(ctx, c.ID, model.Contact{Email: "b@test.com"}, model.RSVPNo)
	third, err := statsSvc.ComputeStats(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rsvps.statsCalls != 2 {
		t.Errorf("expected a fresh query after invalidation, got %d", rsvps.statsCalls)
	}
	if third.Total != 2 {
		t.Errorf("expected 2 responses, got %d", third.Total)
	}
}

func TestComputeStatsUnknownCampaign(t *testing.T) {
	statsSvc := &service.StatsService{
		CampaignRepo: NewMockCampaignRepo(),
		RSVPRepo:     NewMockRSVPRepo(),
	}
	_, err := statsSvc.ComputeStats(context.Background(), 99)
	if !appErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
