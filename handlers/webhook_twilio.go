package handlers

import (
	"net/http"
	"strings"

	"medicore/services/conversation"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TwilioWebhookHandler terminates the Twilio messaging webhook, which posts
// form-encoded Body/From fields.
type TwilioWebhookHandler struct {
	Conversation conversation.ConversationService
}

func NewTwilioWebhookHandler(svc conversation.ConversationService) *TwilioWebhookHandler {
	return &TwilioWebhookHandler{Conversation: svc}
}

// Receive accepts an inbound Twilio message. Like the Meta webhook, it always
// acknowledges once the message is accepted for processing.
func (h *TwilioWebhookHandler) Receive(c *gin.Context) {
	logger := utils.GetLogger()

	body := c.PostForm("Body")
	from := strings.TrimPrefix(c.PostForm("From"), "whatsapp:")

	if from == "" || strings.TrimSpace(body) == "" {
		c.Status(http.StatusOK)
		return
	}

	inbound := conversation.InboundMessage{
		From: from,
		Text: body,
	}
	if err := h.Conversation.HandleMessage(c.Request.Context(), inbound); err != nil {
		logger.Error("twilio webhook message handling failed",
			zap.String("from", from), zap.Error(err))
	}

	c.Status(http.StatusOK)
}
