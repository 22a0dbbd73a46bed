package dao

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/quick-notes-service/internal/domain"
	"github.com/haierkeys/quick-notes-service/internal/model"
	"github.com/haierkeys/quick-notes-service/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// noteRepository 基于 gorm 的笔记仓储实现
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository 创建笔记仓储
func NewNoteRepository(db *gorm.DB) domain.NoteRepository {
	return &noteRepository{db: db}
}

func toDomain(m *model.Note) *domain.Note {
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, t.Name)
	}
	return &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Tags:      tags,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
}

func tagRows(noteID int64, tags []string) []model.NoteTag {
	rows := make([]model.NoteTag, 0, len(tags))
	for i, name := range tags {
		rows = append(rows, model.NoteTag{
			NoteID:   noteID,
			Position: i,
			Name:     name,
		})
	}
	return rows
}

// escapeLike 转义 LIKE 模式中的通配符，让搜索串按字面匹配
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// applyFilter 把查询谓词编译为 SQL 条件
// 搜索与标签同时存在时两者取 AND
func applyFilter(db *gorm.DB, f domain.NoteFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		db = db.Where(
			"(lower(title) LIKE ? ESCAPE '\\' OR lower(content) LIKE ? ESCAPE '\\')",
			pattern, pattern,
		)
	}
	if f.Tag != "" {
		db = db.Where(
			"EXISTS (SELECT 1 FROM note_tag WHERE note_tag.note_id = note.id AND note_tag.name = ?)",
			f.Tag,
		)
	}
	return db
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := time.Now()
	m := model.Note{
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: timex.Time(now),
		UpdatedAt: timex.Time(now),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(&m).Error; err != nil {
			return err
		}
		rows := tagRows(m.ID, note.Tags)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Note{}).Where("id = ?", note.ID).Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": timex.Time(time.Now()),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Note{}).Where("id = ?", note.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNoteNotFound
			}
		}
		if err := tx.Where("note_id = ?", note.ID).Delete(&model.NoteTag{}).Error; err != nil {
			return err
		}
		rows := tagRows(note.ID, note.Tags)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID)
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Note{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNoteNotFound
		}
		return tx.Where("note_id = ?", id).Delete(&model.NoteTag{}).Error
	})
}

func (r *noteRepository) List(ctx context.Context, filter domain.NoteFilter, offset, limit int) ([]*domain.Note, error) {
	var ms []model.Note
	db := applyFilter(r.db.WithContext(ctx).Model(&model.Note{}), filter)
	err := db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for i := range ms {
		notes = append(notes, toDomain(&ms[i]))
	}
	return notes, nil
}

func (r *noteRepository) Count(ctx context.Context, filter domain.NoteFilter) (int64, error) {
	var count int64
	db := applyFilter(r.db.WithContext(ctx).Model(&model.Note{}), filter)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noteRepository) DistinctTags(ctx context.Context) ([]string, error) {
	var tags []string
	err := r.db.WithContext(ctx).
		Model(&model.NoteTag{}).
		Distinct("name").
		Where("name <> ''").
		Order("name ASC").
		Pluck("name", &tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *noteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
