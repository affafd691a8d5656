package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/support-center/internal/service"
	"go.uber.org/zap"
)

const accessCodeHeader = "X-Access-Code"

// AdminHandler 管理后台接口
type AdminHandler struct {
	admin  *service.AdminService
	logger *zap.Logger
}

// NewAdminHandler 创建管理后台处理器
func NewAdminHandler(admin *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// Tab 读取标签页：stats, subscribers, quotes, contacts, tickets
func (h *AdminHandler) Tab(c *gin.Context) {
	data, err := h.admin.Tab(c.Request.Context(), c.GetHeader(accessCodeHeader), c.Param("tab"), c.Query("q"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid access code"})
	case errors.Is(err, service.ErrUnknownTab):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown tab"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load dashboard data"})
	}
}
