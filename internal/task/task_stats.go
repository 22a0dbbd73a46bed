package task

import (
	"context"
	"time"

	"github.com/haierkeys/quick-notes-service/internal/app"
	"github.com/haierkeys/quick-notes-service/internal/domain"

	"go.uber.org/zap"
)

// StatsTask 周期性输出存储统计信息
type StatsTask struct {
	app    *app.App
	logger *zap.Logger
}

// Name 任务名称
func (t *StatsTask) Name() string {
	return "StoreStats"
}

// LoopInterval 执行间隔
func (t *StatsTask) LoopInterval() time.Duration {
	return 1 * time.Hour
}

// IsStartupRun 启动时立即执行一次
func (t *StatsTask) IsStartupRun() bool {
	return true
}

// Run 统计笔记与标签数量并记录日志
func (t *StatsTask) Run(ctx context.Context) error {
	count, err := t.app.NoteRepo.Count(ctx, domain.NoteFilter{})
	if err != nil {
		return err
	}
	tags, err := t.app.NoteRepo.DistinctTags(ctx)
	if err != nil {
		return err
	}
	t.logger.Info("store stats",
		zap.Int64("notes", count),
		zap.Int("tags", len(tags)),
	)
	return nil
}

// NewStatsTask 创建统计任务
func NewStatsTask(appContainer *app.App) (Task, error) {
	return &StatsTask{
		app:    appContainer,
		logger: appContainer.Logger(),
	}, nil
}

func init() {
	Register(NewStatsTask)
}
