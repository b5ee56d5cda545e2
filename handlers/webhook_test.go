package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medicore/config"
	"medicore/services/conversation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingConversation struct {
	received []conversation.InboundMessage
	err      error
}

func (c *capturingConversation) HandleMessage(_ context.Context, msg conversation.InboundMessage) error {
	c.received = append(c.received, msg)
	return c.err
}

func metaRouter(svc conversation.ConversationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMetaWebhookHandler(svc)
	r := gin.New()
	r.GET("/webhooks/meta", h.Verify)
	r.POST("/webhooks/meta", h.Receive)
	return r
}

func TestMetaWebhookVerifyHandshake(t *testing.T) {
	config.AppConfig.MetaVerifyToken = "secret-token"
	r := metaRouter(&capturingConversation{})

	q := url.Values{}
	q.Set("hub.mode", "subscribe")
	q.Set("hub.verify_token", "secret-token")
	q.Set("hub.challenge", "challenge-123")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhooks/meta?"+q.Encode(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "challenge-123", w.Body.String())
}

func TestMetaWebhookVerifyRejectsBadToken(t *testing.T) {
	config.AppConfig.MetaVerifyToken = "secret-token"
	r := metaRouter(&capturingConversation{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/meta?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=x", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMetaWebhookExtractsTextMessage(t *testing.T) {
	svc := &capturingConversation{}
	r := metaRouter(svc)

	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "254700000001",
						"type": "text",
						"text": {"body": "book"}
					}]
				}
			}]
		}]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/meta", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.received, 1)
	assert.Equal(t, "254700000001", svc.received[0].From)
	assert.Equal(t, "book", svc.received[0].Text)
	assert.Empty(t, svc.received[0].ButtonPayload)
}

func TestMetaWebhookExtractsButtonReply(t *testing.T) {
	svc := &capturingConversation{}
	r := metaRouter(svc)

	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "254700000001",
						"type": "interactive",
						"interactive": {
							"type": "button_reply",
							"button_reply": {"id": "opt-1", "title": "1"}
						}
					}]
				}
			}]
		}]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/meta", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.received, 1)
	assert.Equal(t, "1", svc.received[0].ButtonPayload)
}

func TestMetaWebhookIgnoresEmptyAndMalformed(t *testing.T) {
	svc := &capturingConversation{}
	r := metaRouter(svc)

	for _, body := range []string{
		`not json at all`,
		`{"entry": []}`,
		`{"entry": [{"changes": [{"value": {"messages": [{"from": "", "text": {"body": "hi"}}]}}]}]}`,
		`{"entry": [{"changes": [{"value": {"messages": [{"from": "254700000001", "text": {"body": ""}}]}}]}]}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/meta", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		// Always acknowledged, never forwarded.
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Empty(t, svc.received)
}

func TestTwilioWebhookExtractsFormFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &capturingConversation{}
	h := NewTwilioWebhookHandler(svc)
	r := gin.New()
	r.POST("/webhooks/twilio", h.Receive)

	form := url.Values{}
	form.Set("Body", "book")
	form.Set("From", "whatsapp:+254700000001")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.received, 1)
	assert.Equal(t, "+254700000001", svc.received[0].From)
	assert.Equal(t, "book", svc.received[0].Text)
}

func TestTwilioWebhookIgnoresEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &capturingConversation{}
	h := NewTwilioWebhookHandler(svc)
	r := gin.New()
	r.POST("/webhooks/twilio", h.Receive)

	form := url.Values{}
	form.Set("Body", "   ")
	form.Set("From", "whatsapp:+254700000001")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.received)
}
