package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notesHandler 极简的内存服务端，用于控制器测试
func notesHandler(listCalls *atomic.Int64) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listCalls.Add(1)
			if r.URL.Query().Get("search") == "missing" {
				w.Write([]byte(`{"success":true,"data":[],"pagination":{"current":1,"pages":0,"total":0}}`))
				return
			}
			w.Write([]byte(`{
				"success": true,
				"data": [{"id":1,"title":"first","content":"x","tags":["dev"]}],
				"pagination": {"current":1,"pages":1,"total":1}
			}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"message":"Note created successfully","data":{"id":2,"title":"new","content":"y","tags":[]}}`))
		}
	})
	mux.HandleFunc("/api/notes/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.Write([]byte(`{"success":true,"message":"Note deleted successfully","data":{"id":1,"title":"first","content":"x","tags":["dev"]}}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"id":1,"title":"first","content":"x","tags":["dev"]}}`))
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":["dev"]}`))
	})
	return mux
}

func newTestController(t *testing.T, listCalls *atomic.Int64) *Controller {
	t.Helper()
	srv := httptest.NewServer(notesHandler(listCalls))
	t.Cleanup(srv.Close)
	c := New(Config{BaseURL: srv.URL}, nil)
	ctl := NewController(c, nil)
	t.Cleanup(ctl.Stop)
	return ctl
}

func TestController_StartLoadsNotesAndTags(t *testing.T) {
	var calls atomic.Int64
	ctl := newTestController(t, &calls)

	require.NoError(t, ctl.Start(context.Background()))

	s := ctl.State()
	assert.False(t, s.InitialLoading)
	require.Len(t, s.Notes, 1)
	assert.Equal(t, "first", s.Notes[0].Title)
	assert.Equal(t, []string{"dev"}, s.Tags)
	require.NotNil(t, s.Pagination)
	assert.EqualValues(t, 1, s.Pagination.Total)
	assert.Empty(t, s.Error)
}

func TestController_SearchDebounce(t *testing.T) {
	var calls atomic.Int64
	ctl := newTestController(t, &calls)
	ctx := context.Background()

	require.NoError(t, ctl.Start(ctx))
	after := calls.Load()

	// 连续输入只触发一次刷新
	ctl.SetSearch(ctx, "m")
	ctl.SetSearch(ctx, "mi")
	ctl.SetSearch(ctx, "missing")

	assert.Equal(t, after, calls.Load())

	assert.Eventually(t, func() bool {
		return calls.Load() == after+1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		s := ctl.State()
		return !s.Updating && len(s.Notes) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestController_SetTagRefreshesImmediately(t *testing.T) {
	var calls atomic.Int64
	ctl := newTestController(t, &calls)
	ctx := context.Background()

	require.NoError(t, ctl.Start(ctx))
	before := calls.Load()

	require.NoError(t, ctl.SetTag(ctx, "dev"))
	assert.Equal(t, before+1, calls.Load())
	assert.Equal(t, "dev", ctl.State().ActiveTag)
}

func TestController_CreateReloads(t *testing.T) {
	var calls atomic.Int64
	ctl := newTestController(t, &calls)
	ctx := context.Background()

	require.NoError(t, ctl.Start(ctx))
	before := calls.Load()

	require.NoError(t, ctl.Create(ctx, NoteParams{Title: "new", Content: "y"}))
	assert.Equal(t, before+1, calls.Load())
	assert.False(t, ctl.State().Updating)
}

func TestController_DeleteReloads(t *testing.T) {
	var calls atomic.Int64
	ctl := newTestController(t, &calls)
	ctx := context.Background()

	require.NoError(t, ctl.Start(ctx))
	require.NoError(t, ctl.Delete(ctx, "1"))
	assert.False(t, ctl.State().Updating)
}

func TestController_ErrorIsDismissible(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{BaseURL: srv.URL, Timeout: time.Second}, nil)
	ctl := NewController(c, nil)
	defer ctl.Stop()

	err := ctl.Start(context.Background())
	require.Error(t, err)

	s := ctl.State()
	assert.Contains(t, s.Error, "Network error")

	ctl.DismissError()
	assert.Empty(t, ctl.State().Error)
}

func TestController_EditState(t *testing.T) {
	var calls atomic.Int64
	ctl := newTestController(t, &calls)

	note := &Note{ID: 1, Title: "first"}
	ctl.Edit(note)
	assert.Equal(t, note, ctl.State().EditingNote)

	ctl.CancelEdit()
	assert.Nil(t, ctl.State().EditingNote)
}
