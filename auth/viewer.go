package auth

import (
	"context"

	"github.com/google/uuid"
)

// Viewer 当前请求的已登录用户，每个请求创建一次，之后只读
type Viewer struct {
	ID   uuid.UUID
	Name string
}

type viewerKey struct{}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func ViewerFromContext(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(Viewer)
	return v, ok
}

// ViewerID 匿名访问返回 nil
func ViewerID(ctx context.Context) *uuid.UUID {
	v, ok := ViewerFromContext(ctx)
	if !ok {
		return nil
	}
	id := v.ID
	return &id
}
