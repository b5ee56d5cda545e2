package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"medicore/config"
)

const metaGraphBaseURL = "https://graph.facebook.com/v18.0"

// MetaSender delivers chat replies through the WhatsApp Cloud API.
type MetaSender struct {
	httpClient *http.Client
	baseURL    string
}

func NewMetaSender() *MetaSender {
	return &MetaSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    metaGraphBaseURL,
	}
}

type metaTextPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             metaText `json:"text"`
}

type metaText struct {
	Body string `json:"body"`
}

func (s *MetaSender) Send(ctx context.Context, to, message string) error {
	payload := metaTextPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             metaText{Body: message},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, config.AppConfig.MetaPhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.MetaAccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call WhatsApp Cloud API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("WhatsApp Cloud API returned status %d", resp.StatusCode)
	}
	return nil
}
