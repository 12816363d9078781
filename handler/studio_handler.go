package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/RigelNana/arktube/service"
	"github.com/RigelNana/arktube/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StudioHandler 创作者工作台，路由均需登录
type StudioHandler struct {
	studio service.StudioService
	logger *logrus.Logger
}

func NewStudioHandler(studio service.StudioService, logger *logrus.Logger) *StudioHandler {
	return &StudioHandler{studio: studio, logger: logger}
}

// List GET /api/studio/videos
func (h *StudioHandler) List(c *gin.Context) {
	cursor, limit, ok := pageParams[time.Time](c)
	if !ok {
		return
	}
	page, err := h.studio.List(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, videoDTOFrom))
}

// Get GET /api/studio/videos/:id
func (h *StudioHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	video, err := h.studio.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Create 返回新视频与直传地址
// POST /api/studio/videos
func (h *StudioHandler) Create(c *gin.Context) {
	video, url, err := h.studio.Create(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"video": video, "url": url})
}

// Update PATCH /api/studio/videos/:id
func (h *StudioHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input service.UpdateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid input")
		return
	}
	video, err := h.studio.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Remove DELETE /api/studio/videos/:id
func (h *StudioHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	video, err := h.studio.Remove(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Revalidate POST /api/studio/videos/:id/revalidate
func (h *StudioHandler) Revalidate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	video, err := h.studio.Revalidate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// RestoreThumbnail POST /api/studio/videos/:id/thumbnail/restore
func (h *StudioHandler) RestoreThumbnail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	video, err := h.studio.RestoreThumbnail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Generate 触发 AI 生成任务，body 可省略
// POST /api/studio/videos/:id/generate/:kind {"prompt":"..."}
func (h *StudioHandler) Generate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	kind, ok := workflow.ParseKind(c.Param("kind"))
	if !ok {
		badRequest(c, "kind must be title, description or thumbnail")
		return
	}
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid input")
		return
	}
	runID, err := h.studio.Generate(c.Request.Context(), id, kind, req.Prompt)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"workflowRunId": runID})
}
