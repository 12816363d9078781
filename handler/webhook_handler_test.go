package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RigelNana/arktube/processor"
	"github.com/RigelNana/arktube/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postWebhook(svc *MockWebhookService, body, signature string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(svc, quietLogger())
	r := gin.New()
	r.POST("/api/videos/webhook", h.Receive)

	req := httptest.NewRequest(http.MethodPost, "/api/videos/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(processor.SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookReceive(t *testing.T) {
	svc := new(MockWebhookService)
	body := `{"type":"video.asset.ready"}`
	svc.On("Handle", mock.Anything, []byte(body), "t=1,v1=abc").Return(nil)

	w := postWebhook(svc, body, "t=1,v1=abc")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Webhook received."}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestWebhookReceive_Rejected(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: missing signature", service.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: missing upload_id", service.ErrBadRequest), http.StatusBadRequest},
	}
	for _, tc := range cases {
		svc := new(MockWebhookService)
		svc.On("Handle", mock.Anything, mock.Anything, mock.Anything).Return(tc.err)

		w := postWebhook(svc, `{}`, "")

		assert.Equal(t, tc.code, w.Code)
	}
}
