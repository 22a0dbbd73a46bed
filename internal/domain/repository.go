// Package domain 定义领域模型和接口
package domain

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoteNotFound 笔记不存在时由仓储返回
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository 笔记仓储接口
// 这是文档存储的边界：服务层只依赖本接口，不感知具体驱动
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id int64) (*Note, error)

	// Create 创建笔记，由存储分配 ID 并写入两个时间戳
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 全量替换标题/内容/标签并刷新 UpdatedAt
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete 物理删除笔记
	Delete(ctx context.Context, id int64) error

	// List 按谓词分页获取笔记，按 CreatedAt 倒序
	List(ctx context.Context, filter NoteFilter, offset, limit int) ([]*Note, error)

	// Count 获取谓词匹配的笔记总数
	Count(ctx context.Context, filter NoteFilter) (int64, error)

	// DistinctTags 枚举全部非空标签值，升序去重
	DistinctTags(ctx context.Context) ([]string, error)

	// Ping 探测存储连接
	Ping(ctx context.Context) error
}
