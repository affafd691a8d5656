package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/support-center/internal/service"
	"go.uber.org/zap"
)

// APIHandler 健康检查与聊天接口
type APIHandler struct {
	sessionService *service.SessionService
	chatService    *service.ChatService
	quickReplies   []string
	serviceName    string
	logger         *zap.Logger
}

// NewAPIHandler 创建 API 处理器
func NewAPIHandler(sessionService *service.SessionService, chatService *service.ChatService, quickReplies []string, serviceName string, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		sessionService: sessionService,
		chatService:    chatService,
		quickReplies:   quickReplies,
		serviceName:    serviceName,
		logger:         logger,
	}
}

// Health 健康检查
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "UP",
		"service":         h.serviceName,
		"active_sessions": h.sessionService.Count(),
	})
}

// CreateSession 创建聊天会话，返回会话 ID 和欢迎消息
func (h *APIHandler) CreateSession(c *gin.Context) {
	cs := h.chatService.StartSession()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"sessionId": cs.ID,
			"messages":  cs.Messages(),
		},
	})
}

// ListMessages 会话消息记录
func (h *APIHandler) ListMessages(c *gin.Context) {
	msgs, err := h.sessionService.Messages(c.Param("id"))
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": msgs})
}

// SendMessage 用户自由输入
func (h *APIHandler) SendMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	msg, err := h.chatService.Send(c.Param("id"), req.Text)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "data": msg})
}

// SendQuickReply 点击快捷回复
func (h *APIHandler) SendQuickReply(c *gin.Context) {
	var req struct {
		Phrase string `json:"phrase"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	msg, err := h.chatService.QuickReply(c.Param("id"), req.Phrase)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "data": msg})
}

// QuickReplies 快捷回复短语列表
func (h *APIHandler) QuickReplies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.quickReplies})
}

func (h *APIHandler) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "message must not be empty"})
	default:
		h.logger.Error("聊天请求失败", zap.String("sessionId", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}
