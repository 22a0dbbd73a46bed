package model

import (
	"github.com/haierkeys/quick-notes-service/pkg/timex"
)

// Note 笔记数据库模型
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string     `gorm:"column:title;type:varchar(200);not null"`
	Content   string     `gorm:"column:content;type:text;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;index"`
	UpdatedAt timex.Time `gorm:"column:updated_at"`

	// Tags 以子表行保存，position 保证数组顺序与重复项不丢失
	Tags []NoteTag `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

func (Note) TableName() string {
	return "note"
}

// NoteTag 笔记标签子表，一行对应标签数组中的一个元素
type NoteTag struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	NoteID   int64  `gorm:"column:note_id;index;not null"`
	Position int    `gorm:"column:position;not null"`
	Name     string `gorm:"column:name;type:varchar(50);index;not null"`
}

func (NoteTag) TableName() string {
	return "note_tag"
}
