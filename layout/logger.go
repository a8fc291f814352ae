package layout

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled returns false so callers skip
// formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger 设置布局包使用的 logger，传 nil 恢复为静默。
//
// 使用的级别：
//   - [slog.LevelDebug]：每次布局的宽度、收窄行数、行数与图片尺寸
//   - [slog.LevelWarn]：图片比内容区还宽，收窄宽度被压到 0
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger 返回当前 logger，可并发调用。
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
