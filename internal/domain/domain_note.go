// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
type Note struct {
	ID        int64
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFilter 笔记查询谓词
// Search 与 Tag 均可为空；两者同时存在时取逻辑与
type NoteFilter struct {
	// Search 标题或内容的大小写不敏感子串匹配
	Search string
	// Tag 标签数组的精确成员匹配
	Tag string
}

// IsEmpty 判断谓词是否匹配全部笔记
func (f NoteFilter) IsEmpty() bool {
	return f.Search == "" && f.Tag == ""
}

// HasTag 判断笔记是否含有指定标签
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
