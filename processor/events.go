package processor

import "encoding/json"

// 回调事件类型
const (
	EventAssetCreated    = "video.asset.created"
	EventAssetReady      = "video.asset.ready"
	EventAssetErrored    = "video.asset.errored"
	EventAssetDeleted    = "video.asset.deleted"
	EventAssetTrackReady = "video.asset.track.ready"
)

// Event 回调外层结构，data 按类型再解析
type Event struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Object EventObject     `json:"object"`
	Data   json.RawMessage `json:"data"`
}

type EventObject struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// AssetEventData asset 系列事件的 data
type AssetEventData struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	UploadID    string       `json:"upload_id"`
	Passthrough string       `json:"passthrough"`
	Duration    float64      `json:"duration"`
	PlaybackIDs []PlaybackID `json:"playback_ids"`
}

func (d *AssetEventData) PlaybackID() string {
	if len(d.PlaybackIDs) == 0 {
		return ""
	}
	return d.PlaybackIDs[0].ID
}

// TrackEventData track.ready 事件的 data
type TrackEventData struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	AssetID string `json:"asset_id"`
}
