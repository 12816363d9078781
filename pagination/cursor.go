package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrInvalidLimit  = fmt.Errorf("limit must be between 1 and %d", MaxLimit)
)

// Sortable 主排序字段的取值类型：时间戳或计数
type Sortable interface {
	time.Time | int64
}

// Cursor 指向上一页最后一行的 (sortValue, id)
type Cursor[V Sortable] struct {
	ID    uuid.UUID `json:"id"`
	Value V         `json:"value"`
}

// Encode 生成对客户端不透明的游标字符串
func (c Cursor[V]) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode 空字符串表示第一页，返回 nil
func Decode[V Sortable](s string) (*Cursor[V], error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var c Cursor[V]
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrInvalidCursor
	}
	if c.ID == uuid.Nil {
		return nil, ErrInvalidCursor
	}
	return &c, nil
}

func ValidateLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return ErrInvalidLimit
	}
	return nil
}

// ParseLimit 解析查询参数，缺省为 DefaultLimit
func ParseLimit(s string) (int, error) {
	if s == "" {
		return DefaultLimit, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidLimit
	}
	if err := ValidateLimit(limit); err != nil {
		return 0, err
	}
	return limit, nil
}
