package global

import (
	"fmt"
	"runtime"

	dumpx "github.com/gookit/goutil/dump"
	"go.uber.org/zap"
)

var (
	Name          string = "Quick Notes Service"
	WebClientName string = "Web"

	// 以下变量由构建时 -ldflags 注入
	Version   string = "1.0.0"
	GitTag    string = ""
	BuildTime string = ""
)

var Logger *zap.Logger

// Log 返回全局日志器，未初始化时退化为 Nop
func Log() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// Dump 调试输出，带调用位置
func Dump(a ...any) {
	_, file, line, ok := runtime.Caller(1)
	if ok {
		fmt.Printf("\033[32m%s:%d:\033[0m\n", file, line)
	}
	dumpx.P(a...)
}
