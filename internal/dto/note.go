// Package dto 定义请求与响应的数据传输对象
package dto

import (
	"github.com/haierkeys/quick-notes-service/pkg/timex"
)

// NoteListRequest 列表查询参数
type NoteListRequest struct {
	// Search 标题/内容子串过滤，可空
	Search string `form:"search"`
	// Tag 标签精确过滤，可空
	Tag string `form:"tag"`
}

// NoteCreateRequest 创建笔记请求体
// 字段校验在服务层完成，以便输出逐字段错误信息
type NoteCreateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NoteUpdateRequest 更新笔记请求体
type NoteUpdateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Note 笔记响应体
type Note struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// Health 健康检查响应体
type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}
