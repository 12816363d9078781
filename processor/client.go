package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RigelNana/arktube/config"
)

// Client 视频处理服务（Mux 兼容）HTTP 客户端
type Client struct {
	baseURL      string
	imageBaseURL string
	streamURL    string
	tokenID      string
	tokenSecret  string
	corsOrigin   string
	httpClient   *http.Client
}

func NewClient(cfg config.MuxConfig) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		streamURL:    strings.TrimRight(cfg.StreamBaseURL, "/"),
		tokenID:      cfg.TokenID,
		tokenSecret:  cfg.TokenSecret,
		corsOrigin:   cfg.CORSOrigin,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateUpload 创建直传地址，passthrough 记录上传者
func (c *Client) CreateUpload(ctx context.Context, passthrough string) (*Upload, error) {
	body := createUploadRequest{
		CORSOrigin: c.corsOrigin,
		NewAssetSettings: assetSettings{
			Passthrough:    passthrough,
			PlaybackPolicy: []string{"public"},
			Input: []assetInput{{
				GeneratedSubtitles: []generatedSubtitle{{LanguageCode: "en", Name: "English"}},
			}},
		},
	}
	var out envelope[Upload]
	if err := c.do(ctx, http.MethodPost, "/video/v1/uploads", body, &out); err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	return &out.Data, nil
}

func (c *Client) GetUpload(ctx context.Context, uploadID string) (*Upload, error) {
	var out envelope[Upload]
	if err := c.do(ctx, http.MethodGet, "/video/v1/uploads/"+uploadID, nil, &out); err != nil {
		return nil, fmt.Errorf("get upload %s: %w", uploadID, err)
	}
	return &out.Data, nil
}

func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	var out envelope[Asset]
	if err := c.do(ctx, http.MethodGet, "/video/v1/assets/"+assetID, nil, &out); err != nil {
		return nil, fmt.Errorf("get asset %s: %w", assetID, err)
	}
	return &out.Data, nil
}

// Transcript 下载字幕轨的纯文本
func (c *Client) Transcript(ctx context.Context, playbackID, trackID string) (string, error) {
	url := fmt.Sprintf("%s/%s/text/%s.txt", c.streamURL, playbackID, trackID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch transcript: http status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Client) ThumbnailURL(playbackID string) string {
	return fmt.Sprintf("%s/%s/thumbnail.jpg", c.imageBaseURL, playbackID)
}

func (c *Client) PreviewURL(playbackID string) string {
	return fmt.Sprintf("%s/%s/animated.gif", c.imageBaseURL, playbackID)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.tokenID, c.tokenSecret)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mux http %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode resp: %w", err)
	}
	return nil
}
