// internal/events/consumer.go
package events

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/openchurch/campaign-service/internal/model"
)

// AuditStore defines the persistence the consumer needs.
type AuditStore interface {
	Insert(e *model.CampaignEvent) error
}

// Consumer appends campaign lifecycle events to the audit table.
type Consumer struct {
	Store AuditStore
}

// Handle processes one delivery off the queue. A malformed body is dropped
// (returning an error would only requeue it forever); a store failure is
// returned so the delivery gets redelivered.
func (c *Consumer) Handle(body []byte) error {
	var event model.CampaignEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Println("⚠️ dropping malformed event:", err)
		return nil
	}
	if event.Type == "" {
		log.Println("⚠️ dropping event with no type")
		return nil
	}

	if err := c.Store.Insert(&event); err != nil {
		return fmt.Errorf("persist event %s for campaign %d: %w", event.Type, event.CampaignID, err)
	}
	log.Printf("📩 Recorded %s for campaign %d", event.Type, event.CampaignID)
	return nil
}
