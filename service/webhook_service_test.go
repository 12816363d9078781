package service

import (
	"context"
	"testing"
	"time"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

type webhookDeps struct {
	videos *MockVideoRepository
	events *MockWebhookEventRepository
	svc    WebhookService
}

func newWebhookDeps() *webhookDeps {
	d := &webhookDeps{
		videos: new(MockVideoRepository),
		events: new(MockWebhookEventRepository),
	}
	d.svc = NewWebhookService(processor.NewVerifier(testWebhookSecret, 5*time.Minute), d.videos, d.events, new(MockProcessor), quietLogger())
	return d
}

func sign(body string) string {
	return processor.SignatureFor(testWebhookSecret, time.Now(), []byte(body))
}

func TestWebhook_MissingSignature(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_1","type":"video.asset.ready","data":{"upload_id":"up_1"}}`

	err := d.svc.Handle(context.Background(), []byte(body), "")

	assert.ErrorIs(t, err, ErrUnauthorized)
	d.videos.AssertNotCalled(t, "UpdateByUploadID", mock.Anything, mock.Anything, mock.Anything)
	d.events.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestWebhook_TamperedBody(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_1","type":"video.asset.ready","data":{"upload_id":"up_1"}}`
	header := sign(body)

	err := d.svc.Handle(context.Background(), []byte(body+" "), header)

	assert.ErrorIs(t, err, ErrUnauthorized)
	d.events.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestWebhook_MalformedJSON(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":`

	err := d.svc.Handle(context.Background(), []byte(body), sign(body))

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestWebhook_AssetCreated(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_1","type":"video.asset.created","object":{"type":"asset","id":"as_1"},"data":{"id":"as_1","status":"preparing","upload_id":"up_1"}}`

	d.events.On("Record", mock.Anything, mock.MatchedBy(func(e *models.WebhookEvent) bool {
		return e.ID == "evt_1" && e.ObjectID == "as_1"
	})).Return(true, nil)
	d.videos.On("UpdateByUploadID", mock.Anything, "up_1", map[string]interface{}{
		"mux_asset_id": "as_1",
		"mux_status":   "preparing",
	}).Return(int64(1), nil)

	err := d.svc.Handle(context.Background(), []byte(body), sign(body))

	require.NoError(t, err)
	d.videos.AssertExpectations(t)
	d.events.AssertExpectations(t)
}

func TestWebhook_AssetCreatedWithoutUploadID(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_2","type":"video.asset.created","data":{"id":"as_1","status":"preparing"}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)

	err := d.svc.Handle(context.Background(), []byte(body), sign(body))

	assert.ErrorIs(t, err, ErrBadRequest)
	d.videos.AssertNotCalled(t, "UpdateByUploadID", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_AssetReady(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_3","type":"video.asset.ready","data":{"id":"as_1","status":"ready","upload_id":"up_1","duration":12.5,"playback_ids":[{"id":"pb_1","policy":"public"}]}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)

	var got map[string]interface{}
	d.videos.On("UpdateByUploadID", mock.Anything, "up_1", mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(map[string]interface{}) }).
		Return(int64(1), nil)

	err := d.svc.Handle(context.Background(), []byte(body), sign(body))

	require.NoError(t, err)
	assert.Equal(t, "ready", got["mux_status"])
	assert.Equal(t, "pb_1", got["mux_playback_id"])
	assert.Equal(t, int64(12500), got["duration"])
	assert.IsType(t, gorm.Expr(""), got["thumbnail_url"])
	assert.IsType(t, gorm.Expr(""), got["preview_url"])
}

func TestWebhook_UnmatchedVideoIsAcknowledged(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_4","type":"video.asset.errored","data":{"id":"as_9","status":"errored","upload_id":"up_missing"}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)
	d.videos.On("UpdateByUploadID", mock.Anything, "up_missing", map[string]interface{}{
		"mux_status": "errored",
	}).Return(int64(0), nil)

	err := d.svc.Handle(context.Background(), []byte(body), sign(body))

	assert.NoError(t, err)
}

func TestWebhook_AssetDeleted(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_5","type":"video.asset.deleted","data":{"id":"as_1","upload_id":"up_1"}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)
	d.videos.On("DeleteByUploadID", mock.Anything, "up_1").Return(int64(1), nil)

	require.NoError(t, d.svc.Handle(context.Background(), []byte(body), sign(body)))
	d.videos.AssertExpectations(t)
}

func TestWebhook_TrackReady(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_6","type":"video.asset.track.ready","data":{"id":"tr_1","type":"text","status":"ready","asset_id":"as_1"}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)
	d.videos.On("UpdateByAssetID", mock.Anything, "as_1", map[string]interface{}{
		"mux_track_id":     "tr_1",
		"mux_track_status": "ready",
	}).Return(int64(1), nil)

	require.NoError(t, d.svc.Handle(context.Background(), []byte(body), sign(body)))
	d.videos.AssertExpectations(t)
}

func TestWebhook_TrackReadyWithoutAssetID(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_7","type":"video.asset.track.ready","data":{"id":"tr_1","status":"ready"}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)

	err := d.svc.Handle(context.Background(), []byte(body), sign(body))

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestWebhook_UnknownTypeIgnored(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_8","type":"video.upload.cancelled","data":{}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(true, nil)

	assert.NoError(t, d.svc.Handle(context.Background(), []byte(body), sign(body)))
	d.videos.AssertNotCalled(t, "UpdateByUploadID", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_DuplicateDeliveryStillApplies(t *testing.T) {
	d := newWebhookDeps()
	body := `{"id":"evt_1","type":"video.asset.errored","data":{"status":"errored","upload_id":"up_1"}}`
	d.events.On("Record", mock.Anything, mock.Anything).Return(false, nil)
	d.videos.On("UpdateByUploadID", mock.Anything, "up_1", mock.Anything).Return(int64(1), nil)

	assert.NoError(t, d.svc.Handle(context.Background(), []byte(body), sign(body)))
	d.videos.AssertExpectations(t)
}
