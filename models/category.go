package models

type Category struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories 启动时写入
var DefaultCategories = []string{
	"Cars and vehicles",
	"Comedy",
	"Education",
	"Gaming",
	"Entertainment",
	"Film and animation",
	"How-to and style",
	"Music",
	"News and politics",
	"People and blogs",
	"Pets and animals",
	"Science and technology",
	"Sports",
	"Travel and events",
}
