package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RigelNana/arktube/config"
	"github.com/sashabaranov/go-openai"
)

const (
	titlePrompt = `Your task is to generate an SEO-focused title for a video based on its transcript. ` +
		`Be concise but descriptive, using relevant keywords to improve discoverability. ` +
		`Keep the title between 3 and 8 words and no longer than 100 characters. ` +
		`Return only the title as plain text, with no quotes or extra formatting.`
	descriptionPrompt = `Your task is to summarize the transcript of a video. ` +
		`Keep the summary under 3000 characters, written in plain sentences that a viewer can skim. ` +
		`Return only the summary as plain text, with no headings or markdown.`
	// 转写文本截断长度
	maxTranscriptChars = 12000
)

// Generator AI 生成标题、描述与缩略图
type Generator interface {
	Title(ctx context.Context, transcript string) (string, error)
	Description(ctx context.Context, transcript string) (string, error)
	// Thumbnail 返回生成图片的临时地址
	Thumbnail(ctx context.Context, prompt string) (string, error)
}

type OpenAIGenerator struct {
	client     *openai.Client
	model      string
	imageModel string
}

func NewOpenAIGenerator(cfg config.OpenAIConfig) *OpenAIGenerator {
	var client *openai.Client
	if cfg.BaseURL != "" {
		// 使用自定义baseURL创建客户端
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}
	return &OpenAIGenerator{client: client, model: cfg.Model, imageModel: cfg.ImageModel}
}

func (g *OpenAIGenerator) Title(ctx context.Context, transcript string) (string, error) {
	return g.complete(ctx, titlePrompt, transcript)
}

func (g *OpenAIGenerator) Description(ctx context.Context, transcript string) (string, error) {
	return g.complete(ctx, descriptionPrompt, transcript)
}

func (g *OpenAIGenerator) complete(ctx context.Context, system, transcript string) (string, error) {
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	text := strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`)
	if text == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return text, nil
}

func (g *OpenAIGenerator) Thumbnail(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("create image returned no url")
	}
	return resp.Data[0].URL, nil
}
