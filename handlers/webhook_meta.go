package handlers

import (
	"net/http"

	"medicore/config"
	"medicore/services/conversation"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetaWebhookHandler terminates the Meta (WhatsApp Cloud API) webhook. It
// extracts text or button-reply input plus the caller identity and hands a
// transport-neutral message to the conversation service.
type MetaWebhookHandler struct {
	Conversation conversation.ConversationService
}

func NewMetaWebhookHandler(svc conversation.ConversationService) *MetaWebhookHandler {
	return &MetaWebhookHandler{Conversation: svc}
}

// Verify answers the subscription handshake Meta performs when the webhook
// URL is registered.
func (h *MetaWebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == config.AppConfig.MetaVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

type metaWebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []metaInboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type metaInboundMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive struct {
		Type        string `json:"type"`
		ButtonReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
	} `json:"interactive"`
}

// Receive accepts inbound messages. It always acknowledges with 200 once the
// payload is parsed; business outcomes reach the user through the outbound
// sender, not through this HTTP status.
func (h *MetaWebhookHandler) Receive(c *gin.Context) {
	logger := utils.GetLogger()

	var payload metaWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Warn("unparseable meta webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				inbound := conversation.InboundMessage{
					From: msg.From,
					Text: msg.Text.Body,
				}
				if msg.Interactive.ButtonReply.ID != "" {
					inbound.ButtonPayload = msg.Interactive.ButtonReply.Title
				}
				if inbound.From == "" || inbound.Input() == "" {
					continue
				}
				if err := h.Conversation.HandleMessage(c.Request.Context(), inbound); err != nil {
					logger.Error("meta webhook message handling failed",
						zap.String("from", inbound.From), zap.Error(err))
				}
			}
		}
	}

	c.Status(http.StatusOK)
}
