// Package service 实现业务逻辑层
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/haierkeys/quick-notes-service/global"
	"github.com/haierkeys/quick-notes-service/internal/domain"
	"github.com/haierkeys/quick-notes-service/internal/dto"
	"github.com/haierkeys/quick-notes-service/pkg/app"
	"github.com/haierkeys/quick-notes-service/pkg/code"
	"github.com/haierkeys/quick-notes-service/pkg/logger"
	"github.com/haierkeys/quick-notes-service/pkg/timex"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	titleMaxLen   = 200
	contentMaxLen = 5000
	tagMaxLen     = 50
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Get 获取单条笔记
	Get(ctx context.Context, id string) (*dto.Note, error)

	// Create 创建笔记
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.Note, error)

	// Update 全量更新笔记
	Update(ctx context.Context, id string, params *dto.NoteUpdateRequest) (*dto.Note, error)

	// Delete 删除笔记，返回被删除的笔记
	Delete(ctx context.Context, id string) (*dto.Note, error)

	// List 按谓词分页获取笔记列表
	List(ctx context.Context, params *dto.NoteListRequest, pager *app.Pager, pageSize int) ([]*dto.Note, int64, error)

	// ListTags 枚举全部去重标签
	ListTags(ctx context.Context) ([]string, error)

	// Health 探测服务与存储状态
	Health(ctx context.Context, version string) *dto.Health
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo  domain.NoteRepository
	sf        *singleflight.Group
	startedAt time.Time
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository) NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		sf:        &singleflight.Group{},
		startedAt: time.Now(),
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note) *dto.Note {
	if note == nil {
		return nil
	}
	d := &dto.Note{}
	if err := copier.Copy(d, note); err != nil {
		global.Log().Warn("note dto copy failed", zap.Error(err))
	}
	d.CreatedAt = timex.Time(note.CreatedAt)
	d.UpdatedAt = timex.Time(note.UpdatedAt)
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d
}

// parseID 解析路径中的笔记 ID；无法解析视同记录不存在
func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, code.ErrorNoteNotFound
	}
	return n, nil
}

// validateNote 校验标题/内容/标签并返回规范化结果
// 标题与内容先裁剪再校验长度；标签裁剪后丢弃空项，重复项保留
func validateNote(title, content string, tags []string) (string, string, []string, error) {
	var fieldErrs []code.FieldError

	title = strings.TrimSpace(title)
	if l := len([]rune(title)); l < 1 || l > titleMaxLen {
		fieldErrs = append(fieldErrs, code.FieldError{
			Field:   "title",
			Message: "Title must be between 1 and 200 characters",
		})
	}

	content = strings.TrimSpace(content)
	if l := len([]rune(content)); l < 1 || l > contentMaxLen {
		fieldErrs = append(fieldErrs, code.FieldError{
			Field:   "content",
			Message: "Content must be between 1 and 5000 characters",
		})
	}

	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len([]rune(tag)) > tagMaxLen {
			fieldErrs = append(fieldErrs, code.FieldError{
				Field:   "tags",
				Message: "Each tag must be 50 characters or less",
			})
			continue
		}
		normalized = append(normalized, tag)
	}

	if len(fieldErrs) > 0 {
		return "", "", nil, code.ErrorValidation.WithFieldErrors(fieldErrs...)
	}
	return title, content, normalized, nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, id string) (*dto.Note, error) {
	noteID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteGetFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(note), nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.Note, error) {
	title, content, tags, err := validateNote(params.Title, params.Content, params.Tags)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{
		Title:   title,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}

	global.Log().Info("note created",
		zap.Int64(logger.FieldNoteID, note.ID),
		zap.Int(logger.FieldCount, len(note.Tags)),
	)
	return s.domainToDTO(note), nil
}

// Update 全量更新笔记
func (s *noteService) Update(ctx context.Context, id string, params *dto.NoteUpdateRequest) (*dto.Note, error) {
	noteID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	title, content, tags, err := validateNote(params.Title, params.Content, params.Tags)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Update(ctx, &domain.Note{
		ID:      noteID,
		Title:   title,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}

	global.Log().Info("note updated", zap.Int64(logger.FieldNoteID, note.ID))
	return s.domainToDTO(note), nil
}

// Delete 删除笔记，成功时返回被删除的笔记
func (s *noteService) Delete(ctx context.Context, id string) (*dto.Note, error) {
	noteID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}

	global.Log().Info("note deleted", zap.Int64(logger.FieldNoteID, noteID))
	return s.domainToDTO(note), nil
}

// List 按谓词分页获取笔记列表
func (s *noteService) List(ctx context.Context, params *dto.NoteListRequest, pager *app.Pager, pageSize int) ([]*dto.Note, int64, error) {
	filter := domain.NoteFilter{
		Search: strings.TrimSpace(params.Search),
		Tag:    strings.TrimSpace(params.Tag),
	}

	total, err := s.noteRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	offset := (pager.Current - 1) * pageSize
	notes, err := s.noteRepo.List(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	list := make([]*dto.Note, 0, len(notes))
	for _, note := range notes {
		list = append(list, s.domainToDTO(note))
	}
	return list, total, nil
}

// ListTags 枚举全部去重标签
// 使用 singleflight 合并并发的重复查询
func (s *noteService) ListTags(ctx context.Context) ([]string, error) {
	v, err, _ := s.sf.Do("tags", func() (interface{}, error) {
		return s.noteRepo.DistinctTags(ctx)
	})
	if err != nil {
		return nil, code.ErrorTagListFailed.WithDetails(err.Error())
	}
	tags := v.([]string)
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// Health 探测服务与存储状态，无论存储状态如何都返回结果
func (s *noteService) Health(ctx context.Context, version string) *dto.Health {
	h := &dto.Health{
		Status:   "ok",
		Version:  version,
		Uptime:   time.Since(s.startedAt).Round(time.Second).String(),
		Database: "connected",
	}
	if err := s.noteRepo.Ping(ctx); err != nil {
		h.Database = "disconnected"
		global.Log().Warn("store ping failed", zap.Error(err))
	}
	return h
}
