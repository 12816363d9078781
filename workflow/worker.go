package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pkg/metrics"
	"github.com/RigelNana/arktube/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSkip 不可重试的失败，例如视频已删除或字幕未就绪
var ErrSkip = errors.New("workflow job skipped")

// VideoStore 任务只能修改任务发起人自己的视频
type VideoStore interface {
	GetOwned(ctx context.Context, id, owner uuid.UUID) (*models.Video, error)
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, updates map[string]interface{}) (*models.Video, error)
}

type TranscriptSource interface {
	Transcript(ctx context.Context, playbackID, trackID string) (string, error)
}

type Worker struct {
	videos      VideoStore
	transcripts TranscriptSource
	generator   Generator
	blob        storage.Blob
	publisher   Publisher
	backoff     time.Duration
	logger      *logrus.Logger
}

func NewWorker(videos VideoStore, transcripts TranscriptSource, generator Generator, blob storage.Blob, publisher Publisher, logger *logrus.Logger) *Worker {
	return &Worker{
		videos:      videos,
		transcripts: transcripts,
		generator:   generator,
		blob:        blob,
		publisher:   publisher,
		backoff:     5 * time.Second,
		logger:      logger,
	}
}

// Handle 执行任务；失败且仍有重试次数时按线性退避重新投递
func (w *Worker) Handle(ctx context.Context, job Job) error {
	log := w.logger.WithFields(logrus.Fields{
		"run_id":   job.RunID,
		"kind":     job.Kind,
		"video_id": job.VideoID,
		"attempt":  job.Attempt,
	})

	err := w.run(ctx, job)
	switch {
	case err == nil:
		metrics.WorkflowJobsTotal.WithLabelValues(string(job.Kind), "succeeded").Inc()
		log.Info("workflow job succeeded")
		return nil
	case errors.Is(err, ErrSkip):
		metrics.WorkflowJobsTotal.WithLabelValues(string(job.Kind), "skipped").Inc()
		log.WithError(err).Warn("workflow job skipped")
		return nil
	case job.Attempt < job.Retries:
		metrics.WorkflowJobsTotal.WithLabelValues(string(job.Kind), "retried").Inc()
		log.WithError(err).Warn("workflow job failed, retrying")
		return w.retry(ctx, job)
	default:
		metrics.WorkflowJobsTotal.WithLabelValues(string(job.Kind), "failed").Inc()
		log.WithError(err).Error("workflow job failed, giving up")
		return err
	}
}

func (w *Worker) retry(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.backoff * time.Duration(job.Attempt+1)):
	}
	job.Attempt++
	return w.publisher.Publish(ctx, job)
}

func (w *Worker) run(ctx context.Context, job Job) error {
	video, err := w.videos.GetOwned(ctx, job.VideoID, job.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: video not found", ErrSkip)
	}
	if err != nil {
		return err
	}

	switch job.Kind {
	case KindTitle:
		transcript, err := w.transcript(ctx, video)
		if err != nil {
			return err
		}
		title, err := w.generator.Title(ctx, transcript)
		if err != nil {
			return err
		}
		_, err = w.videos.UpdateOwned(ctx, video.ID, job.UserID, map[string]interface{}{"title": title})
		return err

	case KindDescription:
		transcript, err := w.transcript(ctx, video)
		if err != nil {
			return err
		}
		description, err := w.generator.Description(ctx, transcript)
		if err != nil {
			return err
		}
		_, err = w.videos.UpdateOwned(ctx, video.ID, job.UserID, map[string]interface{}{"description": description})
		return err

	case KindThumbnail:
		return w.thumbnail(ctx, video, job)

	default:
		return fmt.Errorf("%w: unknown kind %q", ErrSkip, job.Kind)
	}
}

func (w *Worker) transcript(ctx context.Context, video *models.Video) (string, error) {
	if video.MuxPlaybackID == nil || video.MuxTrackID == nil {
		return "", fmt.Errorf("%w: transcript not ready", ErrSkip)
	}
	text, err := w.transcripts.Transcript(ctx, *video.MuxPlaybackID, *video.MuxTrackID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrSkip)
	}
	return text, nil
}

func (w *Worker) thumbnail(ctx context.Context, video *models.Video, job Job) error {
	prompt := strings.TrimSpace(job.Prompt)
	if prompt == "" {
		prompt = video.Title
	}
	src, err := w.generator.Thumbnail(ctx, prompt)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("thumbnails/%s/%s.png", video.ID, job.RunID)
	url, err := storage.CopyFromURL(ctx, w.blob, src, key)
	if err != nil {
		return err
	}
	if _, err := w.videos.UpdateOwned(ctx, video.ID, job.UserID, map[string]interface{}{
		"thumbnail_url": url,
		"thumbnail_key": key,
	}); err != nil {
		return err
	}
	// 旧文件删除失败不影响结果
	if video.ThumbnailKey != nil && *video.ThumbnailKey != key {
		if err := w.blob.Delete(ctx, *video.ThumbnailKey); err != nil {
			w.logger.WithError(err).WithField("key", *video.ThumbnailKey).Warn("failed to delete old thumbnail")
		}
	}
	return nil
}
