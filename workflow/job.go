package workflow

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Kind string

const (
	KindTitle       Kind = "title"
	KindDescription Kind = "description"
	KindThumbnail   Kind = "thumbnail"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindTitle, KindDescription, KindThumbnail:
		return k, true
	}
	return "", false
}

// Job 一次异步生成任务，RunID 返回给调用方
type Job struct {
	RunID   uuid.UUID `json:"run_id"`
	Kind    Kind      `json:"kind"`
	VideoID uuid.UUID `json:"video_id"`
	UserID  uuid.UUID `json:"user_id"`
	Prompt  string    `json:"prompt,omitempty"`
	Retries int       `json:"retries"`
	Attempt int       `json:"attempt"`
}

var ErrDisabled = errors.New("workflow broker disabled")

// Publisher 触发工作流
type Publisher interface {
	Publish(ctx context.Context, job Job) error
	Close() error
}

// Handler 处理单个任务，返回错误时由消费端决定是否重试
type Handler func(ctx context.Context, job Job) error

// Consumer 持续消费直到 ctx 结束
type Consumer interface {
	Run(ctx context.Context, handle Handler) error
	Close() error
}

type disabledPublisher struct{}

func (disabledPublisher) Publish(ctx context.Context, job Job) error { return ErrDisabled }
func (disabledPublisher) Close() error                               { return nil }
