package handler

import (
	"net/http"
	"time"

	"github.com/RigelNana/arktube/repository"
	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type VideoHandler struct {
	videos service.VideoService
	logger *logrus.Logger
}

func NewVideoHandler(videos service.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, logger: logger}
}

// GetMany 公开视频列表
// GET /api/videos?categoryId=&userId=&cursor=&limit=
func (h *VideoHandler) GetMany(c *gin.Context) {
	categoryID, ok := optionalQueryID(c, "categoryId")
	if !ok {
		return
	}
	userID, ok := optionalQueryID(c, "userId")
	if !ok {
		return
	}
	cursor, limit, ok := pageParams[time.Time](c)
	if !ok {
		return
	}

	page, err := h.videos.GetMany(c.Request.Context(), repository.VideoFilter{CategoryID: categoryID, UserID: userID}, cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, videoDTOFrom))
}

// GetTrending 按观看数排序
// GET /api/videos/trending
func (h *VideoHandler) GetTrending(c *gin.Context) {
	cursor, limit, ok := pageParams[int64](c)
	if !ok {
		return
	}
	page, err := h.videos.GetTrending(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, videoDTOFrom))
}

// GetSubscribed 已订阅创作者的视频
// GET /api/videos/subscribed
func (h *VideoHandler) GetSubscribed(c *gin.Context) {
	cursor, limit, ok := pageParams[time.Time](c)
	if !ok {
		return
	}
	page, err := h.videos.GetSubscribed(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, videoDTOFrom))
}

// Search GET /api/search?q=&categoryId=
func (h *VideoHandler) Search(c *gin.Context) {
	categoryID, ok := optionalQueryID(c, "categoryId")
	if !ok {
		return
	}
	cursor, limit, ok := pageParams[time.Time](c)
	if !ok {
		return
	}
	page, err := h.videos.Search(c.Request.Context(), c.Query("q"), categoryID, cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, videoDTOFrom))
}

// GetOne GET /api/videos/:id
func (h *VideoHandler) GetOne(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	row, err := h.videos.GetOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videoDTOFrom(*row))
}

// RecordView POST /api/videos/:id/views
func (h *VideoHandler) RecordView(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.videos.RecordView(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "view recorded"})
}

// React POST /api/videos/:id/reactions {"type":"like"|"dislike"}
func (h *VideoHandler) React(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	current, err := h.videos.React(c.Request.Context(), id, req.Type)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": current})
}
