package processor

type envelope[T any] struct {
	Data T `json:"data"`
}

type createUploadRequest struct {
	CORSOrigin       string        `json:"cors_origin"`
	NewAssetSettings assetSettings `json:"new_asset_settings"`
}

type assetSettings struct {
	Passthrough    string       `json:"passthrough"`
	PlaybackPolicy []string     `json:"playback_policy"`
	Input          []assetInput `json:"input"`
}

type assetInput struct {
	GeneratedSubtitles []generatedSubtitle `json:"generated_subtitles"`
}

type generatedSubtitle struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
}

type Upload struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	AssetID string `json:"asset_id"`
}

type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

type Track struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	TextType     string `json:"text_type"`
	Status       string `json:"status"`
	LanguageCode string `json:"language_code"`
}

type Asset struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	UploadID    string       `json:"upload_id"`
	Passthrough string       `json:"passthrough"`
	Duration    float64      `json:"duration"`
	PlaybackIDs []PlaybackID `json:"playback_ids"`
	Tracks      []Track      `json:"tracks"`
}

// PlaybackID 返回第一个播放 id
func (a *Asset) PlaybackID() string {
	if len(a.PlaybackIDs) == 0 {
		return ""
	}
	return a.PlaybackIDs[0].ID
}

// DurationMillis 处理服务以秒为单位返回时长
func (a *Asset) DurationMillis() int64 {
	return int64(a.Duration * 1000)
}

// TextTrack 返回已就绪的字幕轨
func (a *Asset) TextTrack() *Track {
	for i := range a.Tracks {
		if a.Tracks[i].Type == "text" && a.Tracks[i].Status == "ready" {
			return &a.Tracks[i]
		}
	}
	return nil
}
