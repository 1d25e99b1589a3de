// internal/dispatch/sms_sender.go
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/openchurch/campaign-service/internal/model"
)

// SMSSender delivers through the SMS gateway's HTTP API.
type SMSSender struct {
	APIURL string
	APIKey string
	Client *http.Client
}

func NewSMSSender(apiURL, apiKey string) *SMSSender {
	return &SMSSender{APIURL: apiURL, APIKey: apiKey, Client: http.DefaultClient}
}

func (s *SMSSender) Send(ctx context.Context, to model.Contact, msg Message) error {
	if to.Phone == "" {
		return fmt.Errorf("recipient has no phone number")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      model.NormalizePhone(to.Phone),
		"message": msg.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
