package routers

import (
	"bytes"
	"embed"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	internalApp "github.com/haierkeys/quick-notes-service/internal/app"
	"github.com/haierkeys/quick-notes-service/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type res struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Pagination *struct {
		Current int   `json:"current"`
		Pages   int   `json:"pages"`
		Total   int64 `json:"total"`
	} `json:"pagination"`
}

func testTranslator(t *testing.T) *ut.UniversalTranslator {
	t.Helper()
	uni := ut.New(en.New(), en.New(), zh.New())
	if validate, ok := binding.Validator.Engine().(*validatorV10.Validate); ok {
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		enTran, _ := uni.GetTranslator("en")
		require.NoError(t, en_translations.RegisterDefaultTranslations(validate, enTran))
	}
	return uni
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.AutoMigrate(db, "Note"))

	cfg := new(internalApp.AppConfig)
	cfg.Server.RunMode = "release"
	cfg.App.DefaultPageSize = 50
	cfg.App.MaxPageSize = 100
	cfg.App.DefaultContextTimeout = 60
	cfg.Tracer.Enabled = true

	appContainer, err := internalApp.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)

	return NewRouter(embed.FS{}, appContainer, testTranslator(t))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, res) {
	t.Helper()
	var reqBody *bytes.Reader
	if body != "" {
		reqBody = bytes.NewReader([]byte(body))
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out res
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestRouter_CreateAndGetNote(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/api/notes",
		`{"title":"First","content":"hello","tags":[" go ","","go"]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, out.Success)
	assert.Equal(t, "Note created successfully", out.Message)

	var created struct {
		ID   int64    `json:"id"`
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &created))
	assert.Equal(t, []string{"go", "go"}, created.Tags)

	w, out = doJSON(t, r, http.MethodGet, "/api/notes/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, out.Success)
}

func TestRouter_ValidationFailure(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/api/notes", `{"title":"","content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, out.Success)
	assert.Equal(t, "Validation failed", out.Message)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "title", out.Errors[0].Field)
	assert.Equal(t, "Title must be between 1 and 200 characters", out.Errors[0].Message)
}

func TestRouter_NoteNotFound(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/notes/99", "/api/notes/abc"} {
		w, out := doJSON(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.False(t, out.Success)
		assert.Equal(t, "Note not found", out.Message)
	}
}

func TestRouter_UpdateAndDelete(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/notes", `{"title":"a","content":"b","tags":["x"]}`)

	w, out := doJSON(t, r, http.MethodPut, "/api/notes/1",
		`{"title":"a2","content":"b2","tags":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Note updated successfully", out.Message)

	w, out = doJSON(t, r, http.MethodDelete, "/api/notes/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Note deleted successfully", out.Message)

	// 删除响应回传被删除的笔记
	deleted := struct {
		ID      int64  `json:"id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}{}
	require.NoError(t, json.Unmarshal(out.Data, &deleted))
	assert.Equal(t, int64(1), deleted.ID)
	assert.Equal(t, "a2", deleted.Title)
	assert.Equal(t, "b2", deleted.Content)

	w, out = doJSON(t, r, http.MethodDelete, "/api/notes/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Note not found", out.Message)
}

func TestRouter_ListWithFiltersAndPagination(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/notes", `{"title":"Go notes","content":"channels","tags":["dev"]}`)
	doJSON(t, r, http.MethodPost, "/api/notes", `{"title":"Recipe","content":"pasta","tags":["food"]}`)

	w, out := doJSON(t, r, http.MethodGet, "/api/notes?search=go", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, out.Pagination)
	assert.EqualValues(t, 1, out.Pagination.Total)

	var notes []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Go notes", notes[0].Title)

	_, out = doJSON(t, r, http.MethodGet, "/api/notes?tag=food", "")
	require.NotNil(t, out.Pagination)
	assert.EqualValues(t, 1, out.Pagination.Total)

	_, out = doJSON(t, r, http.MethodGet, "/api/notes?limit=1&page=2", "")
	require.NotNil(t, out.Pagination)
	assert.EqualValues(t, 2, out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.Current)
	assert.Equal(t, 2, out.Pagination.Pages)
}

func TestRouter_Tags(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/notes", `{"title":"a","content":"b","tags":["zulu","alpha"]}`)

	_, out := doJSON(t, r, http.MethodGet, "/api/tags", "")
	var tags []string
	require.NoError(t, json.Unmarshal(out.Data, &tags))
	assert.Equal(t, []string{"alpha", "zulu"}, tags)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, out.Success)
	assert.Equal(t, "Notes API is running", out.Message)

	var h struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "connected", h.Database)
}

func TestRouter_UnknownEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, out.Success)
	assert.Equal(t, "API endpoint not found", out.Message)
}

func TestRouter_TraceHeader(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}
