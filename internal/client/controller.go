package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultSearchDebounce 搜索输入的防抖间隔
const DefaultSearchDebounce = 300 * time.Millisecond

// State 界面状态快照
type State struct {
	Notes      []*Note
	Tags       []string
	Pagination *Pagination

	// Search 当前搜索输入值
	Search string
	// ActiveTag 当前标签过滤值
	ActiveTag string

	// InitialLoading 仅首次加载为 true
	InitialLoading bool
	// Updating 后续刷新与写操作期间为 true
	Updating bool

	// Error 可关闭的错误信息，空串表示无错误
	Error string

	// EditingNote 正在编辑的笔记，nil 表示新建模式
	EditingNote *Note
}

// Controller 界面状态控制器
// 搜索输入防抖后触发刷新，标签切换立即刷新，写操作成功后重新加载
type Controller struct {
	mu     sync.Mutex
	client *Client
	state  State

	debounce      *time.Timer
	debounceDelay time.Duration

	// onChange 状态变更回调，可为 nil
	onChange func(State)
}

// NewController 创建控制器
func NewController(c *Client, onChange func(State)) *Controller {
	if onChange == nil {
		onChange = func(State) {}
	}
	return &Controller{
		client:        c,
		debounceDelay: DefaultSearchDebounce,
		onChange:      onChange,
	}
}

// State 返回当前状态快照
func (ctl *Controller) State() State {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.snapshotLocked()
}

func (ctl *Controller) snapshotLocked() State {
	s := ctl.state
	s.Notes = append([]*Note{}, ctl.state.Notes...)
	s.Tags = append([]string{}, ctl.state.Tags...)
	return s
}

func (ctl *Controller) notifyLocked() {
	ctl.onChange(ctl.snapshotLocked())
}

// Start 执行首次加载
func (ctl *Controller) Start(ctx context.Context) error {
	ctl.mu.Lock()
	ctl.state.InitialLoading = true
	ctl.state.Error = ""
	ctl.notifyLocked()
	ctl.mu.Unlock()

	err := ctl.load(ctx)

	ctl.mu.Lock()
	ctl.state.InitialLoading = false
	ctl.notifyLocked()
	ctl.mu.Unlock()
	return err
}

// load 并发拉取笔记列表与标签列表并更新状态
func (ctl *Controller) load(ctx context.Context) error {
	ctl.mu.Lock()
	search := ctl.state.Search
	tag := ctl.state.ActiveTag
	ctl.mu.Unlock()

	var (
		notes []*Note
		pager *Pagination
		tags  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, pager, err = ctl.client.ListNotes(gctx, search, tag)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = ctl.client.ListTags(gctx)
		return err
	})

	err := g.Wait()

	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if err != nil {
		ctl.state.Error = err.Error()
		ctl.notifyLocked()
		return err
	}
	ctl.state.Notes = notes
	ctl.state.Pagination = pager
	ctl.state.Tags = tags
	ctl.state.Error = ""
	ctl.notifyLocked()
	return nil
}

// refresh 带 Updating 标记的重新加载
func (ctl *Controller) refresh(ctx context.Context) error {
	ctl.mu.Lock()
	ctl.state.Updating = true
	ctl.notifyLocked()
	ctl.mu.Unlock()

	err := ctl.load(ctx)

	ctl.mu.Lock()
	ctl.state.Updating = false
	ctl.notifyLocked()
	ctl.mu.Unlock()
	return err
}

// SetSearch 更新搜索输入，防抖后触发刷新
func (ctl *Controller) SetSearch(ctx context.Context, search string) {
	ctl.mu.Lock()
	ctl.state.Search = search
	ctl.notifyLocked()

	if ctl.debounce != nil {
		ctl.debounce.Stop()
	}
	ctl.debounce = time.AfterFunc(ctl.debounceDelay, func() {
		_ = ctl.refresh(ctx)
	})
	ctl.mu.Unlock()
}

// SetTag 更新标签过滤并立即刷新
func (ctl *Controller) SetTag(ctx context.Context, tag string) error {
	ctl.mu.Lock()
	ctl.state.ActiveTag = tag
	ctl.notifyLocked()
	ctl.mu.Unlock()

	return ctl.refresh(ctx)
}

// Create 创建笔记，成功后重新加载
func (ctl *Controller) Create(ctx context.Context, params NoteParams) error {
	return ctl.mutate(ctx, func() error {
		_, err := ctl.client.CreateNote(ctx, params)
		return err
	})
}

// Update 更新笔记，成功后重新加载并退出编辑态
func (ctl *Controller) Update(ctx context.Context, id string, params NoteParams) error {
	return ctl.mutate(ctx, func() error {
		if _, err := ctl.client.UpdateNote(ctx, id, params); err != nil {
			return err
		}
		ctl.mu.Lock()
		ctl.state.EditingNote = nil
		ctl.mu.Unlock()
		return nil
	})
}

// Delete 删除笔记，成功后重新加载
func (ctl *Controller) Delete(ctx context.Context, id string) error {
	return ctl.mutate(ctx, func() error {
		_, err := ctl.client.DeleteNote(ctx, id)
		return err
	})
}

// mutate 包装写操作：设置 Updating，失败记录错误，成功后重新加载
func (ctl *Controller) mutate(ctx context.Context, op func() error) error {
	ctl.mu.Lock()
	ctl.state.Updating = true
	ctl.state.Error = ""
	ctl.notifyLocked()
	ctl.mu.Unlock()

	err := op()

	if err != nil {
		ctl.mu.Lock()
		ctl.state.Updating = false
		ctl.state.Error = err.Error()
		ctl.notifyLocked()
		ctl.mu.Unlock()
		return err
	}

	loadErr := ctl.load(ctx)

	ctl.mu.Lock()
	ctl.state.Updating = false
	ctl.notifyLocked()
	ctl.mu.Unlock()
	return loadErr
}

// Edit 进入编辑态
func (ctl *Controller) Edit(note *Note) {
	ctl.mu.Lock()
	ctl.state.EditingNote = note
	ctl.notifyLocked()
	ctl.mu.Unlock()
}

// CancelEdit 退出编辑态
func (ctl *Controller) CancelEdit() {
	ctl.mu.Lock()
	ctl.state.EditingNote = nil
	ctl.notifyLocked()
	ctl.mu.Unlock()
}

// DismissError 关闭错误提示
func (ctl *Controller) DismissError() {
	ctl.mu.Lock()
	ctl.state.Error = ""
	ctl.notifyLocked()
	ctl.mu.Unlock()
}

// Stop 停止挂起的防抖定时器
func (ctl *Controller) Stop() {
	ctl.mu.Lock()
	if ctl.debounce != nil {
		ctl.debounce.Stop()
		ctl.debounce = nil
	}
	ctl.mu.Unlock()
}
