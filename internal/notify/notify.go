// Package notify 提供 toast 通知通道，表单提交流程通过它向前端推送状态提示。
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Level toast 级别
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast 一条临时提示
type Toast struct {
	SessionID string `json:"sessionId,omitempty"`
	Level     Level  `json:"level"`
	Message   string `json:"message"`
}

// Sink toast 接收方
type Sink interface {
	Notify(ctx context.Context, toast Toast)
}

// LogSink 将 toast 写入日志
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink 创建日志 sink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, toast Toast) {
	s.logger.Info("toast",
		zap.String("sessionId", toast.SessionID),
		zap.String("level", string(toast.Level)),
		zap.String("message", toast.Message))
}

// Multi 扇出到多个 sink
type Multi []Sink

func (m Multi) Notify(ctx context.Context, toast Toast) {
	for _, s := range m {
		s.Notify(ctx, toast)
	}
}

// Session 绑定到某个会话的通知器，满足 ticket.Notifier
type Session struct {
	sink      Sink
	sessionID string
}

// ForSession 返回绑定会话的通知器，sessionID 可为空
func ForSession(sink Sink, sessionID string) *Session {
	return &Session{sink: sink, sessionID: sessionID}
}

func (s *Session) Info(ctx context.Context, message string) {
	s.sink.Notify(ctx, Toast{SessionID: s.sessionID, Level: LevelInfo, Message: message})
}

func (s *Session) Success(ctx context.Context, message string) {
	s.sink.Notify(ctx, Toast{SessionID: s.sessionID, Level: LevelSuccess, Message: message})
}

func (s *Session) Failure(ctx context.Context, message string) {
	s.sink.Notify(ctx, Toast{SessionID: s.sessionID, Level: LevelError, Message: message})
}
