package pagination

import (
	"fmt"

	"gorm.io/gorm"
)

// Key 排序键：主排序表达式 + id 兜底，均按降序
type Key struct {
	Sort string
	ID   string
}

// Apply 追加游标条件、排序，并多取一行用于判断是否有下一页
func Apply[V Sortable](db *gorm.DB, key Key, cursor *Cursor[V], limit int) *gorm.DB {
	if cursor != nil {
		db = db.Where(
			fmt.Sprintf("(%s < ? OR (%s = ? AND %s < ?))", key.Sort, key.Sort, key.ID),
			cursor.Value, cursor.Value, cursor.ID,
		)
	}
	return db.
		Order(key.Sort + " DESC").
		Order(key.ID + " DESC").
		Limit(limit + 1)
}

// Trim 截断到 limit 条；仅当确实多取到一行时返回下一页游标
func Trim[T any, V Sortable](rows []T, limit int, cursorOf func(T) Cursor[V]) ([]T, *Cursor[V]) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	next := cursorOf(rows[len(rows)-1])
	return rows, &next
}

// Page 一页结果
type Page[T any, V Sortable] struct {
	Items      []T
	NextCursor *Cursor[V]
}

func NewPage[T any, V Sortable](rows []T, limit int, cursorOf func(T) Cursor[V]) Page[T, V] {
	items, next := Trim(rows, limit, cursorOf)
	if items == nil {
		items = []T{}
	}
	return Page[T, V]{Items: items, NextCursor: next}
}

// Token 下一页游标的编码形式，没有下一页时为 nil
func (p Page[T, V]) Token() *string {
	if p.NextCursor == nil {
		return nil
	}
	s := p.NextCursor.Encode()
	return &s
}
