// internal/cache/key_builder.go
package cache

import "fmt"

const keyPrefix = "campaigns"

// RSVPStatsKey builds the cache key for a campaign's aggregated RSVP stats.
func RSVPStatsKey(campaignID int) string {
	return fmt.Sprintf("%s:rsvp-stats:%d", keyPrefix, campaignID)
}
