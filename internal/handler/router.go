package handler

import "github.com/gin-gonic/gin"

// Handlers 路由使用的全部处理器
type Handlers struct {
	API       *APIHandler
	Knowledge *KnowledgeHandler
	Ticket    *TicketHandler
	Admin     *AdminHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes 注册 HTTP 与 WebSocket 路由
func RegisterRoutes(r gin.IRouter, h Handlers) {
	// WebSocket 端点
	r.GET("/ws", h.WebSocket.HandleWebSocket)

	api := r.Group("/api")
	api.GET("/health", h.API.Health)

	chat := api.Group("/chat")
	chat.POST("/sessions", h.API.CreateSession)
	chat.GET("/sessions/:id/messages", h.API.ListMessages)
	chat.POST("/sessions/:id/messages", h.API.SendMessage)
	chat.POST("/sessions/:id/quick-replies", h.API.SendQuickReply)
	chat.GET("/quick-replies", h.API.QuickReplies)

	api.GET("/faq", h.Knowledge.FAQ)
	api.GET("/support/faq", h.Knowledge.SupportFAQ)
	api.GET("/articles", h.Knowledge.Articles)
	api.GET("/articles/:id", h.Knowledge.Article)
	api.GET("/blog", h.Knowledge.Blog)

	api.GET("/tickets/categories", h.Knowledge.TicketCategories)
	api.POST("/tickets", h.Ticket.Submit)

	api.GET("/admin/:tab", h.Admin.Tab)
}
