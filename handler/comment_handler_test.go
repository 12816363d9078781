package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pagination"
	"github.com/RigelNana/arktube/repository"
	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func commentRouter(svc *MockCommentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCommentHandler(svc, quietLogger())
	r := gin.New()
	r.GET("/api/videos/:id/comments", h.List)
	r.POST("/api/videos/:id/comments", h.Create)
	r.DELETE("/api/comments/:id", h.Remove)
	return r
}

func TestCommentList_TotalCount(t *testing.T) {
	svc := new(MockCommentService)
	videoID := uuid.New()
	row := repository.CommentRow{UserName: "ada", LikeCount: 2}
	row.ID = uuid.New()
	row.Value = "first"
	page := service.CommentPage{TotalCount: 7}
	page.Items = []repository.CommentRow{row}
	svc.On("List", mock.Anything, videoID, mock.Anything, pagination.DefaultLimit).Return(page, nil)

	w := serve(commentRouter(svc), http.MethodGet, "/api/videos/"+videoID.String()+"/comments", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["totalCount"])
	assert.Nil(t, body["nextCursor"])
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].(map[string]interface{})["value"])
}

func TestCommentCreate_Blank(t *testing.T) {
	svc := new(MockCommentService)
	videoID := uuid.New()
	svc.On("Create", mock.Anything, videoID, "  ").Return(nil, fmt.Errorf("%w: comment must not be empty", service.ErrBadRequest))

	w := serve(commentRouter(svc), http.MethodPost, "/api/videos/"+videoID.String()+"/comments", `{"value":"  "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentCreate(t *testing.T) {
	svc := new(MockCommentService)
	videoID := uuid.New()
	comment := &models.Comment{VideoID: videoID, Value: "nice"}
	svc.On("Create", mock.Anything, videoID, "nice").Return(comment, nil)

	w := serve(commentRouter(svc), http.MethodPost, "/api/videos/"+videoID.String()+"/comments", `{"value":"nice"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"value":"nice"`)
}

func TestCommentRemove_NotOwner(t *testing.T) {
	svc := new(MockCommentService)
	id := uuid.New()
	svc.On("Remove", mock.Anything, id).Return(nil, fmt.Errorf("%w: comment", service.ErrNotFound))

	w := serve(commentRouter(svc), http.MethodDelete, "/api/comments/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"comment not found"}`, w.Body.String())
}
