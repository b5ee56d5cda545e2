package messaging

import (
	"context"
	"fmt"
	"strings"

	"medicore/config"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender delivers chat replies through the Twilio messaging API. When
// the configured From number carries the "whatsapp:" prefix, destinations get
// the same prefix so replies stay on the WhatsApp channel.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender() *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AppConfig.TwilioAccountSID,
		Password: config.AppConfig.TwilioAuthToken,
	})
	return &TwilioSender{
		client: client,
		from:   config.AppConfig.TwilioFromNumber,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to, message string) error {
	if strings.HasPrefix(s.from, "whatsapp:") && !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send Twilio message: %w", err)
	}
	return nil
}
