package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/pkg/metrics"
	"github.com/RigelNana/arktube/processor"
	"github.com/RigelNana/arktube/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SignatureVerifier interface {
	Verify(body []byte, header string) error
}

// WebhookService 处理服务回调驱动的视频状态迁移。
// 只按处理服务签发的关联 id 匹配视频；未匹配到任何行时静默确认，
// 以容忍乱序与重复投递
type WebhookService interface {
	Handle(ctx context.Context, body []byte, signature string) error
}

type WebhookServiceImpl struct {
	verifier  SignatureVerifier
	videos    repository.VideoRepository
	events    repository.WebhookEventRepository
	processor VideoProcessor
	logger    *logrus.Logger
}

func NewWebhookService(verifier SignatureVerifier, videos repository.VideoRepository, events repository.WebhookEventRepository, proc VideoProcessor, logger *logrus.Logger) WebhookService {
	return &WebhookServiceImpl{
		verifier:  verifier,
		videos:    videos,
		events:    events,
		processor: proc,
		logger:    logger,
	}
}

func (s *WebhookServiceImpl) Handle(ctx context.Context, body []byte, signature string) error {
	// 验签通过前不解析任何内容
	if err := s.verifier.Verify(body, signature); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "unauthorized").Inc()
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	var event processor.Event
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		return badRequest("malformed webhook payload")
	}

	log := s.logger.WithFields(logrus.Fields{"event_id": event.ID, "event_type": event.Type})

	if event.ID != "" {
		fresh, err := s.events.Record(ctx, &models.WebhookEvent{
			ID:       event.ID,
			Type:     event.Type,
			ObjectID: event.Object.ID,
			Payload:  datatypes.JSON(body),
		})
		if err != nil {
			return internal("record webhook event", err)
		}
		if !fresh {
			log.Info("duplicate webhook delivery")
		}
	}

	affected, err := s.apply(ctx, event)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(event.Type, outcomeOf(err)).Inc()
		return err
	}

	outcome := "applied"
	switch {
	case affected < 0:
		outcome = "ignored"
	case affected == 0:
		outcome = "unmatched"
		log.Info("webhook matched no video")
	}
	metrics.WebhookEventsTotal.WithLabelValues(event.Type, outcome).Inc()
	return nil
}

// apply 返回受影响行数；-1 表示未处理的事件类型
func (s *WebhookServiceImpl) apply(ctx context.Context, event processor.Event) (int64, error) {
	switch event.Type {
	case processor.EventAssetCreated:
		data, err := assetData(event)
		if err != nil {
			return 0, err
		}
		return s.updateByUpload(ctx, data.UploadID, map[string]interface{}{
			"mux_asset_id": data.ID,
			"mux_status":   data.Status,
		})

	case processor.EventAssetReady:
		data, err := assetData(event)
		if err != nil {
			return 0, err
		}
		updates := map[string]interface{}{
			"mux_asset_id": data.ID,
			"mux_status":   data.Status,
			"duration":     int64(data.Duration * 1000),
		}
		if playbackID := data.PlaybackID(); playbackID != "" {
			updates["mux_playback_id"] = playbackID
			// 已有自定义缩略图时保留
			updates["thumbnail_url"] = gorm.Expr("COALESCE(thumbnail_url, ?)", s.processor.ThumbnailURL(playbackID))
			updates["preview_url"] = gorm.Expr("COALESCE(preview_url, ?)", s.processor.PreviewURL(playbackID))
		}
		return s.updateByUpload(ctx, data.UploadID, updates)

	case processor.EventAssetErrored:
		data, err := assetData(event)
		if err != nil {
			return 0, err
		}
		return s.updateByUpload(ctx, data.UploadID, map[string]interface{}{
			"mux_status": data.Status,
		})

	case processor.EventAssetDeleted:
		data, err := assetData(event)
		if err != nil {
			return 0, err
		}
		n, err := s.videos.DeleteByUploadID(ctx, data.UploadID)
		if err != nil {
			return 0, internal("delete video", err)
		}
		return n, nil

	case processor.EventAssetTrackReady:
		var data processor.TrackEventData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return 0, badRequest("malformed track data")
		}
		if data.AssetID == "" {
			return 0, badRequest("missing asset_id")
		}
		n, err := s.videos.UpdateByAssetID(ctx, data.AssetID, map[string]interface{}{
			"mux_track_id":     data.ID,
			"mux_track_status": data.Status,
		})
		if err != nil {
			return 0, internal("update video track", err)
		}
		return n, nil

	default:
		return -1, nil
	}
}

// assetData asset 系列事件必须带 upload_id，它是关联回视频的唯一依据
func assetData(event processor.Event) (*processor.AssetEventData, error) {
	var data processor.AssetEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return nil, badRequest("malformed asset data")
	}
	if data.UploadID == "" {
		return nil, badRequest("missing upload_id")
	}
	return &data, nil
}

func (s *WebhookServiceImpl) updateByUpload(ctx context.Context, uploadID string, updates map[string]interface{}) (int64, error) {
	n, err := s.videos.UpdateByUploadID(ctx, uploadID, updates)
	if err != nil {
		return 0, internal("update video", err)
	}
	return n, nil
}

func outcomeOf(err error) string {
	switch Kind(err) {
	case ErrBadRequest:
		return "rejected"
	default:
		return "error"
	}
}
