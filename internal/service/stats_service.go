// internal/service/stats_service.go
package service

import (
	"context"

	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

// StatsCache is the read/write surface of the Redis stats cache.
type StatsCache interface {
	GetStats(ctx context.Context, campaignID int) (*model.RSVPStats, bool)
	SetStats(ctx context.Context, campaignID int, stats *model.RSVPStats)
	InvalidateStats(ctx context.Context, campaignID int)
}

// StatsService aggregates RSVP responses for dashboards. Delivery counts are
// read straight off the campaign record, set by the dispatcher.
type StatsService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	RSVPRepo     repository.RSVPRepositoryInterface
	Cache        StatsCache
}

func (s *StatsService) ComputeStats(ctx context.Context, campaignID int) (*model.RSVPStats, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if stats, ok := s.Cache.GetStats(ctx, campaignID); ok {
			return stats, nil
		}
	}

	stats, err := s.RSVPRepo.Stats(campaignID)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.SetStats(ctx, campaignID, stats)
	}
	return stats, nil
}
