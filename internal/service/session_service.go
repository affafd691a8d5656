package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/supportbot/support-center/internal/filter"
	"github.com/supportbot/support-center/internal/model"
	"github.com/supportbot/support-center/internal/notify"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("会话不存在")
	ErrNoConnection    = errors.New("会话未建立推送连接")
)

// Conn 推送连接，*websocket.Conn 满足该接口
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// ChatSession 一个浏览器会话的聊天状态，消息只保存在内存中
type ChatSession struct {
	ID        string
	CreatedAt time.Time
	FAQ       *filter.View[model.FAQItem] // 会话内的 FAQ 检索视图

	lastActive atomic.Int64 // UnixNano，清理时无需持有会话锁

	mu        sync.Mutex // 保护以下字段，同时串行化推送
	messages  []model.ChatMessage
	conn      Conn
	requestID string // 当前有效的请求
	cancel    context.CancelFunc
}

func (cs *ChatSession) touch(t time.Time) {
	cs.lastActive.Store(t.UnixNano())
}

func (cs *ChatSession) idle(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, cs.lastActive.Load()))
}

// Messages 返回消息副本
func (cs *ChatSession) Messages() []model.ChatMessage {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]model.ChatMessage(nil), cs.messages...)
}

// PendingRequest 尚未完成回复的请求 ID，没有则为空
func (cs *ChatSession) PendingRequest() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.requestID
}

// SessionConfig 会话服务配置
type SessionConfig struct {
	TTL           time.Duration // 空闲超时
	SweepInterval time.Duration // 清理周期，默认 TTL/2
	FAQItems      []model.FAQItem
}

// SessionService 会话管理服务
type SessionService struct {
	sessions map[string]*ChatSession
	mu       sync.RWMutex
	cfg      SessionConfig
	logger   *zap.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionService 创建会话管理服务并启动过期清理
func NewSessionService(cfg SessionConfig, logger *zap.Logger) *SessionService {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = cfg.TTL / 2
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}

	s := &SessionService{
		sessions: make(map[string]*ChatSession),
		cfg:      cfg,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	if cfg.TTL > 0 {
		go s.janitor()
	}
	return s
}

// Create 创建会话
func (s *SessionService) Create() *ChatSession {
	now := time.Now()
	cs := &ChatSession{
		ID:        uuid.NewString(),
		CreatedAt: now,
		FAQ:       filter.NewView(s.cfg.FAQItems),
	}
	cs.touch(now)

	s.mu.Lock()
	s.sessions[cs.ID] = cs
	s.mu.Unlock()

	s.logger.Info("会话已创建", zap.String("sessionId", cs.ID))
	return cs
}

// Get 获取会话
func (s *SessionService) Get(sessionID string) (*ChatSession, error) {
	s.mu.RLock()
	cs, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cs, nil
}

// Messages 会话消息列表
func (s *SessionService) Messages(sessionID string) ([]model.ChatMessage, error) {
	cs, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return cs.Messages(), nil
}

// Append 追加消息并推送
func (s *SessionService) Append(cs *ChatSession, msg model.ChatMessage) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	s.appendLocked(cs, msg)
}

// appendIfCurrent 仅当 requestID 仍是会话当前请求时追加，返回是否追加
func (s *SessionService) appendIfCurrent(cs *ChatSession, requestID string, msg model.ChatMessage) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.requestID != requestID {
		return false
	}
	s.appendLocked(cs, msg)
	return true
}

func (s *SessionService) appendLocked(cs *ChatSession, msg model.ChatMessage) {
	cs.messages = append(cs.messages, msg)
	cs.touch(time.Now())
	s.pushLocked(cs, model.ServerFrame{Type: model.FrameMessage, Data: msg})
}

// beginRequest 取消会话中尚未完成的请求，登记新请求并追加用户消息
func (s *SessionService) beginRequest(cs *ChatSession, text string) (context.Context, model.ChatMessage) {
	ctx, cancel := context.WithCancel(context.Background())
	requestID := uuid.NewString()

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.cancel != nil {
		s.logger.Debug("取消未完成的回复",
			zap.String("sessionId", cs.ID),
			zap.String("requestId", cs.requestID))
		cs.cancel()
	}
	cs.requestID = requestID
	cs.cancel = cancel

	msg := model.NewMessage(model.MessageUser, requestID, text)
	s.appendLocked(cs, msg)
	return ctx, msg
}

// endRequest 请求完成后清理，只清理仍属于该请求的状态
func (s *SessionService) endRequest(cs *ChatSession, requestID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.requestID != requestID {
		return
	}
	if cs.cancel != nil {
		cs.cancel()
	}
	cs.requestID = ""
	cs.cancel = nil
}

// Attach 为会话绑定推送连接，先推送 SESSION 帧告知会话 ID，再补发历史消息。
// 已有连接会被关闭。
func (s *SessionService) Attach(sessionID string, conn Conn) error {
	cs, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.conn != nil && cs.conn != conn {
		s.logger.Info("会话重新连接，关闭旧连接", zap.String("sessionId", sessionID))
		cs.conn.Close()
	}
	cs.conn = conn
	cs.touch(time.Now())

	s.pushLocked(cs, model.ServerFrame{Type: model.FrameSession, Data: model.SessionInfo{SessionID: cs.ID}})
	if cs.conn == nil {
		return ErrNoConnection
	}
	for _, msg := range cs.messages {
		s.pushLocked(cs, model.ServerFrame{Type: model.FrameMessage, Data: msg})
		if cs.conn == nil {
			return ErrNoConnection
		}
	}
	return nil
}

// Detach 解绑连接，仅当 conn 仍是当前连接时生效
func (s *SessionService) Detach(sessionID string, conn Conn) {
	cs, err := s.Get(sessionID)
	if err != nil {
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.conn == conn {
		cs.conn = nil
	}
}

// Push 向会话推送任意帧
func (s *SessionService) Push(sessionID string, frame model.ServerFrame) error {
	cs, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.conn == nil {
		return ErrNoConnection
	}
	s.pushLocked(cs, frame)
	return nil
}

func (s *SessionService) pushLocked(cs *ChatSession, frame model.ServerFrame) {
	if cs.conn == nil {
		return
	}
	if err := cs.conn.WriteJSON(frame); err != nil {
		s.logger.Warn("推送失败，移除连接",
			zap.String("sessionId", cs.ID),
			zap.String("frame", frame.Type),
			zap.Error(err))
		cs.conn.Close()
		cs.conn = nil
	}
}

// Notify 实现 notify.Sink，toast 推送到对应会话；会话不存在或未连接时忽略
func (s *SessionService) Notify(_ context.Context, toast notify.Toast) {
	if toast.SessionID == "" {
		return
	}
	if err := s.Push(toast.SessionID, model.ServerFrame{Type: model.FrameToast, Data: toast}); err != nil {
		s.logger.Debug("toast 未送达",
			zap.String("sessionId", toast.SessionID),
			zap.Error(err))
	}
}

// Touch 刷新会话活跃时间（心跳）
func (s *SessionService) Touch(sessionID string) bool {
	cs, err := s.Get(sessionID)
	if err != nil {
		return false
	}
	cs.touch(time.Now())
	return true
}

// Remove 移除会话，取消未完成的回复并关闭连接
func (s *SessionService) Remove(sessionID string) {
	s.mu.Lock()
	cs, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.closeSession(cs)
	s.logger.Info("会话已移除", zap.String("sessionId", sessionID))
}

func (s *SessionService) closeSession(cs *ChatSession) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.cancel != nil {
		cs.cancel()
		cs.cancel = nil
	}
	cs.requestID = ""
	if cs.conn != nil {
		cs.conn.Close()
		cs.conn = nil
	}
}

// Count 当前会话数
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close 停止清理协程
func (s *SessionService) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// janitor 过期会话清理
func (s *SessionService) janitor() {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

// sweep 清理空闲时间超过 TTL 的会话，返回清理数量。
// 持有注册表锁期间不获取任何会话锁，推送阻塞的会话不会拖住其它会话。
func (s *SessionService) sweep(now time.Time) int {
	var expired []*ChatSession

	s.mu.Lock()
	for id, cs := range s.sessions {
		if cs.idle(now) > s.cfg.TTL {
			expired = append(expired, cs)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, cs := range expired {
		s.closeSession(cs)
		s.logger.Info("清理过期会话", zap.String("sessionId", cs.ID))
	}
	return len(expired)
}
