// internal/service/campaign_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/openchurch/campaign-service/internal/dispatch"
	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/events"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

// BatchDispatcher is what the lifecycle manager needs from the dispatcher.
type BatchDispatcher interface {
	Supports(channel string) bool
	Dispatch(ctx context.Context, campaign *model.Campaign, recipients []model.Contact, batchID string) (*dispatch.Summary, error)
}

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	GroupRepo    repository.ContactGroupRepositoryInterface
	Dispatcher   BatchDispatcher
	Events       events.Publisher
}

// CreateCampaignInput carries everything a new draft needs. Recipients come
// either inline or copied from a contact group; when GroupID is set the
// group's current members are snapshotted into the campaign.
type CreateCampaignInput struct {
	Title       string
	Body        string
	Channel     string
	Recipients  []model.Contact
	GroupID     int
	ImageURL    string
	TemplateID  string
	RSVPEnabled bool
}

type CampaignDetails struct {
	model.Campaign
	RecipientCount int `json:"recipient_count"`
}

// CreateCampaign validates and persists a new draft. All validation happens
// before any write; nothing partial is ever stored. The returned warnings are
// advisory only (e.g. an SMS body over the single-segment length).
func (s *CampaignService) CreateCampaign(input CreateCampaignInput) (*model.Campaign, []string, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, nil, appErrors.NewInvalidArgument("title must not be empty")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, nil, appErrors.NewInvalidArgument("body must not be empty")
	}
	if !model.ValidChannel(input.Channel) {
		return nil, nil, appErrors.NewInvalidArgument("unknown channel: %q", input.Channel)
	}

	recipients := input.Recipients
	if input.GroupID != 0 {
		group, err := s.GroupRepo.GetByID(input.GroupID)
		if err != nil {
			return nil, nil, err
		}
		if group == nil {
			return nil, nil, appErrors.NewContactGroupNotFound(input.GroupID)
		}
		recipients = append(recipients, group.Contacts...)
	}

	// Check before dedup: a contact with no identity key would otherwise be
	// dropped silently instead of rejected.
	for _, rcpt := range recipients {
		if rcpt.Key() == "" {
			return nil, nil, appErrors.NewInvalidArgument(
				"recipient %s %s has neither email nor phone", rcpt.FirstName, rcpt.LastName)
		}
	}

	recipients = model.DedupContacts(recipients)
	if len(recipients) == 0 {
		return nil, nil, appErrors.NewInvalidArgument("at least one recipient is required")
	}
	if len(recipients) > model.MaxRecipients {
		return nil, nil, appErrors.NewInvalidArgument(
			"%d recipients exceeds the limit of %d", len(recipients), model.MaxRecipients)
	}
	if err := validateChannelRecipients(input.Channel, recipients); err != nil {
		return nil, nil, err
	}

	var warnings []string
	if bodyLen := utf8.RuneCountInString(input.Body); input.Channel == model.ChannelSMS && bodyLen > model.SMSAdvisoryLength {
		warnings = append(warnings, fmt.Sprintf(
			"body is %d characters, over the %d-character single-segment SMS length",
			bodyLen, model.SMSAdvisoryLength))
	}
	if input.TemplateID != "" && input.Channel != model.ChannelWhatsApp {
		warnings = append(warnings, "template_id is only used by the whatsapp channel")
	}

	c := &model.Campaign{
		Title:       input.Title,
		Body:        input.Body,
		Channel:     input.Channel,
		Status:      model.StatusDraft,
		ImageURL:    input.ImageURL,
		TemplateID:  input.TemplateID,
		RSVPEnabled: input.RSVPEnabled,
		Recipients:  recipients,
	}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, nil, err
	}
	return c, warnings, nil
}

func validateChannelRecipients(channel string, recipients []model.Contact) error {
	for _, r := range recipients {
		switch channel {
		case model.ChannelEmail:
			if r.Email == "" {
				return appErrors.NewInvalidArgument(
					"recipient %s %s has no email address", r.FirstName, r.LastName)
			}
		case model.ChannelSMS, model.ChannelWhatsApp:
			if r.Phone == "" {
				return appErrors.NewInvalidArgument(
					"recipient %s %s has no phone number", r.FirstName, r.LastName)
			}
		}
	}
	return nil
}

// SendCampaign performs the atomic draft->sent transition, then dispatches to
// every recipient and records the batch counts. Two near-simultaneous calls
// result in exactly one dispatch batch: the loser of the status CAS gets a
// conflict.
func (s *CampaignService) SendCampaign(ctx context.Context, campaignID int) (*dispatch.Summary, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if !s.Dispatcher.Supports(campaign.Channel) {
		return nil, fmt.Errorf("no sender configured for channel %q", campaign.Channel)
	}

	ok, err := s.CampaignRepo.TransitionStatus(campaignID, model.StatusDraft, model.StatusSent)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.NewConflict(
			"campaign %d cannot be sent in status %q", campaignID, campaign.Status)
	}

	recipients, err := s.CampaignRepo.GetRecipients(campaignID)
	if err != nil {
		return nil, err
	}

	// The campaign is already marked sent; the batch must run to completion
	// even if the caller disconnects, since the status machine has no way
	// back to draft. Per-send timeouts still apply inside the dispatcher.
	batchCtx := context.WithoutCancel(ctx)

	batchID := uuid.New().String()
	summary, err := s.Dispatcher.Dispatch(batchCtx, campaign, recipients, batchID)
	if err != nil {
		return nil, err
	}

	if err := s.CampaignRepo.SetSendCounts(campaignID, summary.SuccessCount, summary.FailCount); err != nil {
		log.Println("⚠️ failed to record send counts:", err)
	}
	s.Events.Publish(model.EventCampaignSent, campaignID, summary)

	return summary, nil
}

// ArchiveCampaign moves a sent campaign to archived. Drafts must be sent or
// deleted first. Archiving an archived campaign is a no-op.
func (s *CampaignService) ArchiveCampaign(campaignID int) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status == model.StatusArchived {
		return campaign, nil
	}

	ok, err := s.CampaignRepo.TransitionStatus(campaignID, model.StatusSent, model.StatusArchived)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent archive may have won between the read and the CAS;
		// that is still the no-op case, not a conflict.
		current, err := s.CampaignRepo.GetByID(campaignID)
		if err != nil {
			return nil, err
		}
		if current.Status == model.StatusArchived {
			return current, nil
		}
		return nil, appErrors.NewConflict(
			"campaign %d cannot be archived in status %q", campaignID, current.Status)
	}

	s.Events.Publish(model.EventCampaignArchived, campaignID, nil)
	return s.CampaignRepo.GetByID(campaignID)
}

// DeleteCampaign removes a draft or archived campaign. Sent campaigns must be
// archived first so the delivery audit trail stays reachable from the UI.
// Dispatch results and RSVP responses are never deleted.
func (s *CampaignService) DeleteCampaign(campaignID int) error {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return err
	}
	if campaign.Status == model.StatusSent {
		return appErrors.NewConflict("sent campaigns must be archived before deletion")
	}

	ok, err := s.CampaignRepo.Delete(campaignID)
	if err != nil {
		return err
	}
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}

	s.Events.Publish(model.EventCampaignDeleted, campaignID, nil)
	return nil
}

// ListCampaigns fetches campaigns with pagination.
func (s *CampaignService) ListCampaigns(page, pageSize int, channel, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, channel, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// GetCampaignDetails returns a campaign with its recipient snapshot loaded.
func (s *CampaignService) GetCampaignDetails(campaignID int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	recipients, err := s.CampaignRepo.GetRecipients(campaignID)
	if err != nil {
		return nil, err
	}
	campaign.Recipients = recipients

	return &CampaignDetails{
		Campaign:       *campaign,
		RecipientCount: len(recipients),
	}, nil
}

// RenderPreview renders the campaign body against one contact, for the
// compose screen's preview pane.
func (s *CampaignService) RenderPreview(campaignID int, contact model.Contact) (string, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return "", err
	}
	return dispatch.RenderBody(campaign.Body, contact), nil
}
