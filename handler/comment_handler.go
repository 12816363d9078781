package handler

import (
	"net/http"
	"time"

	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	comments service.CommentService
	logger   *logrus.Logger
}

func NewCommentHandler(comments service.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// List GET /api/videos/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	cursor, limit, ok := pageParams[time.Time](c)
	if !ok {
		return
	}
	page, err := h.comments.List(c.Request.Context(), videoID, cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := pageResponse(page.Page, commentDTOFrom)
	resp["totalCount"] = page.TotalCount
	c.JSON(http.StatusOK, resp)
}

// Create POST /api/videos/:id/comments {"value":"..."}
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), videoID, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Remove DELETE /api/comments/:id
func (h *CommentHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	comment, err := h.comments.Remove(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// React POST /api/comments/:id/reactions
func (h *CommentHandler) React(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	current, err := h.comments.React(c.Request.Context(), id, req.Type)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": current})
}
