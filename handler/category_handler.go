package handler

import (
	"net/http"

	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	categories service.CategoryService
	logger     *logrus.Logger
}

func NewCategoryHandler(categories service.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories})
}
