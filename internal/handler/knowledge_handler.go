package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/support-center/internal/service"
)

// KnowledgeHandler 知识库、FAQ、博客的检索接口，参数 q 与 category
type KnowledgeHandler struct {
	knowledge *service.KnowledgeService
}

// NewKnowledgeHandler 创建知识库处理器
func NewKnowledgeHandler(knowledge *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge}
}

func (h *KnowledgeHandler) FAQ(c *gin.Context) {
	c.JSON(http.StatusOK, h.knowledge.FAQ(c.Query("q"), c.Query("category")))
}

func (h *KnowledgeHandler) SupportFAQ(c *gin.Context) {
	c.JSON(http.StatusOK, h.knowledge.SupportFAQ(c.Query("q"), c.Query("category")))
}

func (h *KnowledgeHandler) Articles(c *gin.Context) {
	c.JSON(http.StatusOK, h.knowledge.Articles(c.Query("q"), c.Query("category")))
}

// Article 按 ID 获取文章
func (h *KnowledgeHandler) Article(c *gin.Context) {
	a, err := h.knowledge.Article(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": a})
}

func (h *KnowledgeHandler) Blog(c *gin.Context) {
	c.JSON(http.StatusOK, h.knowledge.Blog(c.Query("q"), c.Query("category")))
}

func (h *KnowledgeHandler) TicketCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.knowledge.TicketCategories(c.Query("q")))
}
