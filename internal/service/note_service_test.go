package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/quick-notes-service/internal/domain"
	"github.com/haierkeys/quick-notes-service/internal/dto"
	"github.com/haierkeys/quick-notes-service/pkg/app"
	"github.com/haierkeys/quick-notes-service/pkg/code"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memNoteRepo 内存仓储，用于服务层测试
type memNoteRepo struct {
	notes   map[int64]*domain.Note
	nextID  int64
	pingErr error
	failAll error
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: map[int64]*domain.Note{}, nextID: 1}
}

func (m *memNoteRepo) clone(n *domain.Note) *domain.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	return &c
}

func (m *memNoteRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return m.clone(n), nil
}

func (m *memNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	n := m.clone(note)
	n.ID = m.nextID
	m.nextID++
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	m.notes[n.ID] = n
	return m.clone(n), nil
}

func (m *memNoteRepo) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	old, ok := m.notes[note.ID]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	n := m.clone(note)
	n.CreatedAt = old.CreatedAt
	n.UpdatedAt = time.Now()
	m.notes[n.ID] = n
	return m.clone(n), nil
}

func (m *memNoteRepo) Delete(ctx context.Context, id int64) error {
	if m.failAll != nil {
		return m.failAll
	}
	if _, ok := m.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *memNoteRepo) List(ctx context.Context, filter domain.NoteFilter, offset, limit int) ([]*domain.Note, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	var matched []*domain.Note
	for _, n := range m.notes {
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(n.Title), s) &&
				!strings.Contains(strings.ToLower(n.Content), s) {
				continue
			}
		}
		if filter.Tag != "" && !n.HasTag(filter.Tag) {
			continue
		}
		matched = append(matched, m.clone(n))
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *memNoteRepo) Count(ctx context.Context, filter domain.NoteFilter) (int64, error) {
	if m.failAll != nil {
		return 0, m.failAll
	}
	list, err := m.List(ctx, filter, 0, len(m.notes))
	return int64(len(list)), err
}

func (m *memNoteRepo) DistinctTags(ctx context.Context) ([]string, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	seen := map[string]bool{}
	var tags []string
	for _, n := range m.notes {
		for _, t := range n.Tags {
			if t != "" && !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags, nil
}

func (m *memNoteRepo) Ping(ctx context.Context) error {
	return m.pingErr
}

func fieldErrOf(t *testing.T, err error) []code.FieldError {
	t.Helper()
	var c *code.Code
	require.True(t, errors.As(err, &c))
	assert.Equal(t, code.ErrorValidation.Code(), c.Code())
	return c.FieldErrors()
}

func TestNoteService_CreateNormalizesTags(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo())

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   "  Trimmed  ",
		Content: "body",
		Tags:    []string{" go ", "", "go", "  ", "infra"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Trimmed", note.Title)
	assert.Equal(t, []string{"go", "go", "infra"}, note.Tags)
}

func TestNoteService_CreateValidation(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.NoteCreateRequest{Title: "   ", Content: ""})
	errs := fieldErrOf(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "Title must be between 1 and 200 characters", errs[0].Message)
	assert.Equal(t, "content", errs[1].Field)

	_, err = svc.Create(ctx, &dto.NoteCreateRequest{
		Title:   strings.Repeat("x", 201),
		Content: "ok",
	})
	errs = fieldErrOf(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)

	_, err = svc.Create(ctx, &dto.NoteCreateRequest{
		Title:   "ok",
		Content: strings.Repeat("y", 5001),
	})
	errs = fieldErrOf(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "content", errs[0].Field)

	_, err = svc.Create(ctx, &dto.NoteCreateRequest{
		Title:   "ok",
		Content: "ok",
		Tags:    []string{strings.Repeat("t", 51)},
	})
	errs = fieldErrOf(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "tags", errs[0].Field)
	assert.Equal(t, "Each tag must be 50 characters or less", errs[0].Message)
}

func TestNoteService_BoundaryLengthsAccepted(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo())

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   strings.Repeat("t", 200),
		Content: strings.Repeat("c", 5000),
		Tags:    []string{strings.Repeat("g", 50)},
	})
	require.NoError(t, err)
	assert.Len(t, note.Tags, 1)
}

func TestNoteService_GetAndParseID(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.NoteCreateRequest{Title: "a", Content: "b"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// 非法 ID 与不存在的 ID 一律按未找到处理
	for _, id := range []string{"abc", "", "0", "-3", "12x", "99"} {
		_, err := svc.Get(ctx, id)
		var c *code.Code
		require.True(t, errors.As(err, &c), "id=%q", id)
		assert.Equal(t, code.ErrorNoteNotFound.Code(), c.Code(), "id=%q", id)
	}
}

func TestNoteService_UpdateReplacesTags(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.NoteCreateRequest{
		Title: "a", Content: "b", Tags: []string{"old"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "1", &dto.NoteUpdateRequest{
		Title: "a2", Content: "b2", Tags: []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "a2", updated.Title)
	assert.Empty(t, updated.Tags)
	assert.NotNil(t, updated.Tags)

	_, err = svc.Update(ctx, "77", &dto.NoteUpdateRequest{Title: "x", Content: "y"})
	var c *code.Code
	require.True(t, errors.As(err, &c))
	assert.Equal(t, code.ErrorNoteNotFound.Code(), c.Code())
}

func TestNoteService_Delete(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.NoteCreateRequest{Title: "a", Content: "b", Tags: []string{"t"}})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, int64(1), deleted.ID)
	assert.Equal(t, "a", deleted.Title)
	assert.Equal(t, []string{"t"}, deleted.Tags)

	_, err = svc.Delete(ctx, "1")
	var c *code.Code
	require.True(t, errors.As(err, &c))
	assert.Equal(t, code.ErrorNoteNotFound.Code(), c.Code())
}

func TestNoteService_ListAndTags(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.NoteCreateRequest{Title: "go notes", Content: "x", Tags: []string{"dev"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.NoteCreateRequest{Title: "other", Content: "x", Tags: []string{"misc"}})
	require.NoError(t, err)

	list, total, err := svc.List(ctx, &dto.NoteListRequest{Search: " go "}, &app.Pager{Current: 1}, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "go notes", list[0].Title)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev", "misc"}, tags)
}

func TestNoteService_ListStoreFailure(t *testing.T) {
	repo := newMemNoteRepo()
	repo.failAll = errors.New("connection refused")
	svc := NewNoteService(repo)

	_, _, err := svc.List(context.Background(), &dto.NoteListRequest{}, &app.Pager{Current: 1}, 50)
	var c *code.Code
	require.True(t, errors.As(err, &c))
	assert.Equal(t, code.ErrorNoteListFailed.Code(), c.Code())
	assert.Equal(t, 500, c.StatusCode())
}

func TestNoteService_Health(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo)

	h := svc.Health(context.Background(), "1.0.0")
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "connected", h.Database)

	repo.pingErr = errors.New("store down")
	h = svc.Health(context.Background(), "1.0.0")
	assert.Equal(t, "disconnected", h.Database)
}

func TestValidateNote_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	tagGen := gen.SliceOf(gen.OneGenOf(
		gen.AlphaString(),
		gen.Const("  "),
		gen.Const(""),
		gen.RegexMatch(`^ *[a-z]{1,8} *$`),
	))

	properties.Property("normalized tags are trimmed, non-empty and within limit", prop.ForAll(
		func(tags []string) bool {
			_, _, normalized, err := validateNote("title", "content", tags)
			if err != nil {
				return true
			}
			for _, tag := range normalized {
				if tag == "" || tag != strings.TrimSpace(tag) || len([]rune(tag)) > tagMaxLen {
					return false
				}
			}
			return true
		},
		tagGen,
	))

	properties.Property("normalization keeps relative order and duplicates", prop.ForAll(
		func(tags []string) bool {
			_, _, normalized, err := validateNote("title", "content", tags)
			if err != nil {
				return true
			}
			var expected []string
			for _, tag := range tags {
				if t := strings.TrimSpace(tag); t != "" && len([]rune(t)) <= tagMaxLen {
					expected = append(expected, t)
				}
			}
			if len(expected) != len(normalized) {
				return false
			}
			for i := range expected {
				if expected[i] != normalized[i] {
					return false
				}
			}
			return true
		},
		tagGen,
	))

	properties.Property("title and content come back trimmed", prop.ForAll(
		func(pad string, body string) bool {
			title, content, _, err := validateNote(pad+"t"+pad, pad+body+"b"+pad, nil)
			if err != nil {
				return true
			}
			return title == strings.TrimSpace(title) && content == strings.TrimSpace(content)
		},
		gen.RegexMatch(`^ {0,4}$`),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
