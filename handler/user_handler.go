package handler

import (
	"net/http"

	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	users  service.UserService
	logger *logrus.Logger
}

func NewUserHandler(users service.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// GetOne 用户主页
// GET /api/users/:id
func (h *UserHandler) GetOne(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	profile, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profileDTOFrom(profile))
}
