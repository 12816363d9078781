package handler

import (
	"net/http"

	"github.com/RigelNana/arktube/processor"
	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WebhookHandler struct {
	webhooks service.WebhookService
	logger   *logrus.Logger
}

func NewWebhookHandler(webhooks service.WebhookService, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, logger: logger}
}

// Receive 必须用原始 body 验签，不能先做 JSON 绑定
// POST /api/videos/webhook
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}
	if err := h.webhooks.Handle(c.Request.Context(), body, c.GetHeader(processor.SignatureHeader)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook received."})
}
