package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGraphURL = "https://graph.facebook.com/v18.0"

// Sender delivers text messages through the WhatsApp Cloud API.
type Sender struct {
	httpClient    *http.Client
	token         string
	phoneNumberID string
	// BaseURL is the Graph API base. Exported for testing with httptest.
	BaseURL string
}

func NewSender(token, phoneNumberID string) *Sender {
	return &Sender{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		token:         token,
		phoneNumberID: phoneNumberID,
		BaseURL:       defaultGraphURL,
	}
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText sends a plain text message to the given phone number. Failures
// are returned to the caller; the webhook handler reports them as a server
// error and never retries.
func (s *Sender) SendText(ctx context.Context, to, body string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	payload.Text.Body = body

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.BaseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("message send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("message send returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
