package handler

import (
	"net/http"
	"time"

	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SubscriptionHandler struct {
	subscriptions service.SubscriptionService
	logger        *logrus.Logger
}

func NewSubscriptionHandler(subscriptions service.SubscriptionService, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, logger: logger}
}

// List GET /api/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	cursor, limit, ok := pageParams[time.Time](c)
	if !ok {
		return
	}
	page, err := h.subscriptions.List(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, subscriptionDTOFrom))
}

// Create POST /api/subscriptions {"creatorId":"..."}
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req struct {
		CreatorID string `json:"creatorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	creatorID, err := uuid.Parse(req.CreatorID)
	if err != nil {
		badRequest(c, "invalid creatorId")
		return
	}
	if err := h.subscriptions.Subscribe(c.Request.Context(), creatorID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"creatorId": creatorID})
}

// Remove DELETE /api/subscriptions/:creatorId
func (h *SubscriptionHandler) Remove(c *gin.Context) {
	creatorID, ok := paramID(c, "creatorId")
	if !ok {
		return
	}
	if err := h.subscriptions.Unsubscribe(c.Request.Context(), creatorID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creatorId": creatorID})
}
