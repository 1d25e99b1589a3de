// internal/service/rsvp_service.go
package service

import (
	"context"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/events"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

// StatsInvalidator is what the RSVP path needs from the stats cache.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context, campaignID int)
}

type RSVPService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	RSVPRepo     repository.RSVPRepositoryInterface
	Cache        StatsInvalidator
	Events       events.Publisher
}

// RecordResponse upserts an attendance response submitted through the public
// link. A second submission from the same contact replaces the first.
func (s *RSVPService) RecordResponse(ctx context.Context, campaignID int, contact model.Contact, response string) error {
	if !model.ValidRSVPResponse(response) {
		return appErrors.NewInvalidArgument("response must be one of oui, non, peut_etre")
	}
	key := contact.Key()
	if key == "" {
		return appErrors.NewInvalidArgument("contact must have an email or phone")
	}

	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return appErrors.NewInvalidState("campaign %d does not accept responses", campaignID)
		}
		return err
	}
	if !campaign.RSVPEnabled {
		return appErrors.NewInvalidState("campaign %d does not accept responses", campaignID)
	}

	resp := &model.RSVPResponse{
		CampaignID: campaignID,
		ContactKey: key,
		Response:   response,
	}
	if err := s.RSVPRepo.Upsert(resp); err != nil {
		return err
	}

	if s.Cache != nil {
		s.Cache.InvalidateStats(ctx, campaignID)
	}
	s.Events.Publish(model.EventRSVPRecorded, campaignID, map[string]string{"response": response})
	return nil
}

// ListResponses returns the current response set for internal dashboards.
func (s *RSVPService) ListResponses(campaignID int) ([]model.RSVPResponse, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}
	return s.RSVPRepo.ListByCampaign(campaignID)
}
