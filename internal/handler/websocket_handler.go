package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/supportbot/support-center/internal/model"
	"github.com/supportbot/support-center/internal/service"
	"go.uber.org/zap"
)

const (
	readTimeout  = 90 * time.Second // 心跳间隔需小于该值
	writeTimeout = 10 * time.Second
	maxFrameSize = 8 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 跨域由 CORS 中间件控制
		return true
	},
}

// wsConn 为每次写入设置超时，不读取的客户端不会无限占用会话锁
type wsConn struct {
	*websocket.Conn
}

func (c *wsConn) WriteJSON(v interface{}) error {
	if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.Conn.WriteJSON(v)
}

// WebSocketHandler WebSocket 处理器
type WebSocketHandler struct {
	sessionService *service.SessionService
	chatService    *service.ChatService
	logger         *zap.Logger
}

// NewWebSocketHandler 创建 WebSocket 处理器
func NewWebSocketHandler(sessionService *service.SessionService, chatService *service.ChatService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		sessionService: sessionService,
		chatService:    chatService,
		logger:         logger,
	}
}

// HandleWebSocket WebSocket 连接入口，session 为空时新建会话
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("session")
	if sessionID == "" {
		sessionID = h.chatService.StartSession().ID
	} else if _, err := h.sessionService.Get(sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	// 升级为 WebSocket 连接，响应头与首个 SESSION 帧都携带会话 ID
	ws, err := upgrader.Upgrade(c.Writer, c.Request, http.Header{sessionHeader: {sessionID}})
	if err != nil {
		h.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}
	conn := &wsConn{Conn: ws}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	if err := h.sessionService.Attach(sessionID, conn); err != nil {
		h.logger.Warn("绑定会话失败", zap.String("sessionId", sessionID), zap.Error(err))
		return
	}
	defer h.sessionService.Detach(sessionID, conn)

	h.logger.Info("WebSocket 连接建立",
		zap.String("sessionId", sessionID),
		zap.String("ip", c.ClientIP()))

	// 消息循环
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		var frame model.ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket 读取错误", zap.String("sessionId", sessionID), zap.Error(err))
			}
			break
		}

		h.handleFrame(sessionID, frame)
	}

	h.logger.Info("WebSocket 连接断开", zap.String("sessionId", sessionID))
}

// handleFrame 处理客户端上行帧
func (h *WebSocketHandler) handleFrame(sessionID string, frame model.ClientFrame) {
	var err error
	switch frame.Type {
	case model.FrameChat:
		// 用户消息和后续回复都通过会话推送
		_, err = h.chatService.Send(sessionID, frame.Text)

	case model.FrameQuickReply:
		_, err = h.chatService.QuickReply(sessionID, frame.Text)

	case model.FrameFAQSearch, model.FrameFAQCategory:
		err = h.pushFAQ(sessionID, frame)

	case model.FrameHeartbeat:
		h.sessionService.Touch(sessionID)
		h.logger.Debug("收到心跳", zap.String("sessionId", sessionID))

	default:
		h.logger.Warn("未知消息类型",
			zap.String("sessionId", sessionID),
			zap.String("type", frame.Type))
		err = errUnknownFrame
	}

	if err != nil {
		h.pushError(sessionID, err)
	}
}

var errUnknownFrame = errors.New("unknown frame type")

func (h *WebSocketHandler) pushFAQ(sessionID string, frame model.ClientFrame) error {
	cs, err := h.sessionService.Get(sessionID)
	if err != nil {
		return err
	}

	if frame.Type == model.FrameFAQSearch {
		res := cs.FAQ.SetQuery(frame.Query)
		return h.sessionService.Push(sessionID, model.ServerFrame{Type: model.FrameFAQResult, Data: res})
	}
	res := cs.FAQ.SetCategory(frame.Category)
	return h.sessionService.Push(sessionID, model.ServerFrame{Type: model.FrameFAQResult, Data: res})
}

func (h *WebSocketHandler) pushError(sessionID string, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		msg = "message must not be empty"
	case errors.Is(err, service.ErrSessionNotFound):
		msg = "session not found"
	}
	if perr := h.sessionService.Push(sessionID, model.ServerFrame{
		Type: model.FrameError,
		Data: gin.H{"error": msg},
	}); perr != nil {
		h.logger.Debug("错误帧未送达", zap.String("sessionId", sessionID), zap.Error(perr))
	}
}
