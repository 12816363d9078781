package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// respondError 按错误类别返回状态码；INTERNAL 不向客户端暴露细节
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	_ = c.Error(err)
	switch service.Kind(err) {
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": message(err) + " not found"})
	case service.ErrBadRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": message(err)})
	case service.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": message(err)})
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// message 去掉类别前缀，只保留具体原因
func message(err error) string {
	msg := err.Error()
	kind := service.Kind(err)
	if errors.Is(err, kind) {
		if rest, ok := strings.CutPrefix(msg, kind.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// paramID 解析路径中的 uuid，失败时已写入 400
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// optionalQueryID 缺省返回 nil
func optionalQueryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, "invalid "+name)
		return nil, false
	}
	return &id, true
}

// pageParams 读取 cursor 与 limit
func pageParams[V pagination.Sortable](c *gin.Context) (*pagination.Cursor[V], int, bool) {
	limit, err := pagination.ParseLimit(c.Query("limit"))
	if err != nil {
		badRequest(c, err.Error())
		return nil, 0, false
	}
	cursor, err := pagination.Decode[V](c.Query("cursor"))
	if err != nil {
		badRequest(c, err.Error())
		return nil, 0, false
	}
	return cursor, limit, true
}

func pageResponse[T any, V pagination.Sortable, D any](page pagination.Page[T, V], toDTO func(T) D) gin.H {
	items := make([]D, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toDTO(item))
	}
	return gin.H{"items": items, "nextCursor": page.Token()}
}
