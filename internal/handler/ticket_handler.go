package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/support-center/internal/notify"
	"github.com/supportbot/support-center/internal/service"
	"github.com/supportbot/support-center/internal/ticket"
	"go.uber.org/zap"
)

// sessionHeader 关联聊天会话，用于推送 toast
const sessionHeader = "X-Session-ID"

// TicketHandler 工单提交接口
type TicketHandler struct {
	submitter ticket.Submitter
	knowledge *service.KnowledgeService
	sink      notify.Sink
	logger    *zap.Logger
}

// NewTicketHandler 创建工单处理器
func NewTicketHandler(submitter ticket.Submitter, knowledge *service.KnowledgeService, sink notify.Sink, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		submitter: submitter,
		knowledge: knowledge,
		sink:      sink,
		logger:    logger,
	}
}

// Submit 校验并提交工单：字段错误 422，后端失败 502，成功 201
func (h *TicketHandler) Submit(c *gin.Context) {
	var form ticket.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	form = form.Normalize()
	if form.Category != "" && !h.knowledge.HasTicketCategory(form.Category) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"errors":  ticket.FieldErrors{"category": "Please choose a valid category"},
		})
		return
	}

	notifier := notify.ForSession(h.sink, c.GetHeader(sessionHeader))
	flow := ticket.NewFlow(h.submitter, notifier, h.logger)
	if err := flow.Edit(form); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}

	receipt, err := flow.Submit(c.Request.Context())
	if err != nil {
		var verr *ticket.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": verr.Fields})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "We couldn't submit your ticket. Please try again.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"reference": receipt.Reference,
			"createdAt": receipt.CreatedAt,
			"state":     flow.State(),
		},
	})
}
