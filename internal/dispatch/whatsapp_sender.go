// internal/dispatch/whatsapp_sender.go
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

// WhatsAppSender delivers through the WhatsApp Business HTTP API.
type WhatsAppSender struct {
	APIURL string
	Token  string
	Client *http.Client
}

func NewWhatsAppSender(apiURL, token string) *WhatsAppSender {
	return &WhatsAppSender{APIURL: apiURL, Token: token, Client: http.DefaultClient}
}

func (s *WhatsAppSender) Send(ctx context.Context, to model.Contact, msg Message) error {
	if to.Phone == "" {
		return fmt.Errorf("recipient has no phone number")
	}

	body := map[string]interface{}{
		"to": model.NormalizePhone(to.Phone),
	}
	// A pre-approved template replaces the free-text body when set.
	if msg.TemplateID != "" {
		body["type"] = "template"
		body["template"] = map[string]string{"name": msg.TemplateID}
	} else {
		body["type"] = "text"
		body["text"] = map[string]string{"body": msg.Body}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp provider returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
