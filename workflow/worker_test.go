package workflow

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RigelNana/arktube/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockVideoStore struct{ mock.Mock }

func (m *MockVideoStore) GetOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id, owner)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoStore) UpdateOwned(ctx context.Context, id, owner uuid.UUID, updates map[string]interface{}) (*models.Video, error) {
	args := m.Called(ctx, id, owner, updates)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTranscripts struct{ mock.Mock }

func (m *MockTranscripts) Transcript(ctx context.Context, playbackID, trackID string) (string, error) {
	args := m.Called(ctx, playbackID, trackID)
	return args.String(0), args.Error(1)
}

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Title(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Description(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Thumbnail(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockBlob struct{ mock.Mock }

func (m *MockBlob) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlob) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, job Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

type workerDeps struct {
	videos      *MockVideoStore
	transcripts *MockTranscripts
	generator   *MockGenerator
	blob        *MockBlob
	publisher   *MockPublisher
}

func newTestWorker() (*Worker, workerDeps) {
	d := workerDeps{
		videos:      new(MockVideoStore),
		transcripts: new(MockTranscripts),
		generator:   new(MockGenerator),
		blob:        new(MockBlob),
		publisher:   new(MockPublisher),
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	w := NewWorker(d.videos, d.transcripts, d.generator, d.blob, d.publisher, logger)
	w.backoff = 0
	return w, d
}

func strPtr(s string) *string { return &s }

func readyVideo(owner uuid.UUID) *models.Video {
	v := &models.Video{
		Title:         "title",
		UserID:        owner,
		MuxPlaybackID: strPtr("pb_1"),
		MuxTrackID:    strPtr("tr_1"),
	}
	v.ID = uuid.New()
	return v
}

func TestWorkerTitle(t *testing.T) {
	ctx := context.Background()
	w, d := newTestWorker()
	owner := uuid.New()
	video := readyVideo(owner)
	job := Job{RunID: uuid.New(), Kind: KindTitle, VideoID: video.ID, UserID: owner, Retries: 3}

	d.videos.On("GetOwned", ctx, video.ID, owner).Return(video, nil)
	d.transcripts.On("Transcript", ctx, "pb_1", "tr_1").Return("some transcript", nil)
	d.generator.On("Title", ctx, "some transcript").Return("A Better Title", nil)
	d.videos.On("UpdateOwned", ctx, video.ID, owner, map[string]interface{}{"title": "A Better Title"}).Return(video, nil)

	assert.NoError(t, w.Handle(ctx, job))
	d.videos.AssertExpectations(t)
	d.generator.AssertExpectations(t)
	d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestWorkerSkips(t *testing.T) {
	ctx := context.Background()

	t.Run("video gone", func(t *testing.T) {
		w, d := newTestWorker()
		job := Job{RunID: uuid.New(), Kind: KindDescription, VideoID: uuid.New(), UserID: uuid.New(), Retries: 3}
		d.videos.On("GetOwned", ctx, job.VideoID, job.UserID).Return(nil, gorm.ErrRecordNotFound)

		assert.NoError(t, w.Handle(ctx, job))
		d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("no transcript yet", func(t *testing.T) {
		w, d := newTestWorker()
		owner := uuid.New()
		video := readyVideo(owner)
		video.MuxTrackID = nil
		job := Job{RunID: uuid.New(), Kind: KindTitle, VideoID: video.ID, UserID: owner, Retries: 3}
		d.videos.On("GetOwned", ctx, video.ID, owner).Return(video, nil)

		assert.NoError(t, w.Handle(ctx, job))
		d.transcripts.AssertNotCalled(t, "Transcript", mock.Anything, mock.Anything, mock.Anything)
		d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestWorkerRetry(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("republishes with next attempt", func(t *testing.T) {
		w, d := newTestWorker()
		video := readyVideo(owner)
		job := Job{RunID: uuid.New(), Kind: KindTitle, VideoID: video.ID, UserID: owner, Retries: 3, Attempt: 1}

		d.videos.On("GetOwned", ctx, video.ID, owner).Return(video, nil)
		d.transcripts.On("Transcript", ctx, "pb_1", "tr_1").Return("", errors.New("timeout"))
		d.publisher.On("Publish", ctx, mock.MatchedBy(func(j Job) bool {
			return j.RunID == job.RunID && j.Attempt == 2
		})).Return(nil)

		assert.NoError(t, w.Handle(ctx, job))
		d.publisher.AssertExpectations(t)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		w, d := newTestWorker()
		video := readyVideo(owner)
		job := Job{RunID: uuid.New(), Kind: KindTitle, VideoID: video.ID, UserID: owner, Retries: 3, Attempt: 3}

		d.videos.On("GetOwned", ctx, video.ID, owner).Return(video, nil)
		d.transcripts.On("Transcript", ctx, "pb_1", "tr_1").Return("", errors.New("timeout"))

		assert.Error(t, w.Handle(ctx, job))
		d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestWorkerThumbnail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	ctx := context.Background()
	w, d := newTestWorker()
	owner := uuid.New()
	video := readyVideo(owner)
	video.ThumbnailKey = strPtr("thumbnails/old.jpg")
	job := Job{RunID: uuid.New(), Kind: KindThumbnail, VideoID: video.ID, UserID: owner, Prompt: "a red car", Retries: 3}
	key := "thumbnails/" + video.ID.String() + "/" + job.RunID.String() + ".png"

	d.videos.On("GetOwned", ctx, video.ID, owner).Return(video, nil)
	d.generator.On("Thumbnail", ctx, "a red car").Return(srv.URL+"/img.png", nil)
	d.blob.On("Put", ctx, key, mock.Anything, mock.Anything, "image/png").Return("https://cdn.example.com/"+key, nil)
	d.videos.On("UpdateOwned", ctx, video.ID, owner, map[string]interface{}{
		"thumbnail_url": "https://cdn.example.com/" + key,
		"thumbnail_key": key,
	}).Return(video, nil)
	d.blob.On("Delete", ctx, "thumbnails/old.jpg").Return(nil)

	assert.NoError(t, w.Handle(ctx, job))
	d.blob.AssertExpectations(t)
	d.videos.AssertExpectations(t)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("thumbnail")
	assert.True(t, ok)
	assert.Equal(t, KindThumbnail, k)

	_, ok = ParseKind("subtitles")
	assert.False(t, ok)
}
