package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/haierkeys/quick-notes-service/pkg/code"
	"github.com/haierkeys/quick-notes-service/pkg/timex"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// DefaultTimeout 单次请求的默认超时
const DefaultTimeout = 10 * time.Second

// Note 服务端返回的笔记
type Note struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteParams 创建/更新笔记的参数
type NoteParams struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Pagination 列表响应的翻页信息
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// Health 健康检查结果
type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// envelope 服务端统一响应结构
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Errors     []code.FieldError `json:"errors"`
	Pagination *Pagination       `json:"pagination"`
}

// Config 客户端配置
type Config struct {
	// BaseURL 服务地址，例如 http://127.0.0.1:9000
	BaseURL string
	// Timeout 请求超时，默认 10s
	Timeout time.Duration
}

// Client 笔记服务 HTTP 客户端
// 所有方法返回的错误均为 *Error
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New 创建客户端实例
func New(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do 发送请求并解码统一响应结构
// 服务端的失败响应（success=false）归一化为 KindServer 错误
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return nil, unknownError(err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, unknownError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	env := &envelope{}
	if err := sonic.Unmarshal(raw, env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, serverError(resp.StatusCode, "")
		}
		return nil, unknownError(err)
	}

	if !env.Success {
		return nil, serverError(resp.StatusCode, env.Message)
	}

	return env, nil
}

func decodeData(env *envelope, v interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, v); err != nil {
		return unknownError(err)
	}
	return nil
}

// ListNotes 获取笔记列表，search/tag 为空时不参与过滤
func (c *Client) ListNotes(ctx context.Context, search, tag string) ([]*Note, *Pagination, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if tag != "" {
		q.Set("tag", tag)
	}
	path := "/api/notes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}

	notes := []*Note{}
	if err := decodeData(env, &notes); err != nil {
		return nil, nil, err
	}
	return notes, env.Pagination, nil
}

// GetNote 获取单条笔记
func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	if id == "" {
		return nil, missingIDError("fetch")
	}

	env, err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	note := &Note{}
	if err := decodeData(env, note); err != nil {
		return nil, err
	}
	return note, nil
}

// CreateNote 创建笔记
func (c *Client) CreateNote(ctx context.Context, params NoteParams) (*Note, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/notes", params)
	if err != nil {
		return nil, err
	}

	note := &Note{}
	if err := decodeData(env, note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote 全量更新笔记
func (c *Client) UpdateNote(ctx context.Context, id string, params NoteParams) (*Note, error) {
	if id == "" {
		return nil, missingIDError("update")
	}

	env, err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}

	note := &Note{}
	if err := decodeData(env, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote 删除笔记，返回服务端回传的被删除笔记
func (c *Client) DeleteNote(ctx context.Context, id string) (*Note, error) {
	if id == "" {
		return nil, missingIDError("deletion")
	}

	env, err := c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	note := &Note{}
	if err := decodeData(env, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListTags 获取全部去重标签
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}

	tags := []string{}
	if err := decodeData(env, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Health 探测服务健康状态
func (c *Client) Health(ctx context.Context) (*Health, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	h := &Health{}
	if err := decodeData(env, h); err != nil {
		return nil, err
	}
	return h, nil
}

// FormatNote 供交互终端打印笔记
func FormatNote(n *Note) string {
	return fmt.Sprintf("#%d %s [%s]", n.ID, n.Title, strings.Join(n.Tags, ", "))
}
