package service

import (
	"errors"

	"github.com/supportbot/support-center/internal/content"
	"github.com/supportbot/support-center/internal/filter"
	"github.com/supportbot/support-center/internal/model"
	"go.uber.org/zap"
)

var ErrArticleNotFound = errors.New("文章不存在")

// KnowledgeService 知识库服务：文章、FAQ、博客和工单分类的只读检索
type KnowledgeService struct {
	articles         []model.Article
	faqCategories    []model.FAQCategory
	supportFAQ       []model.FAQEntry
	faqItems         []model.FAQItem
	blogPosts        []model.BlogPost
	ticketCategories []model.TicketCategory
	logger           *zap.Logger
}

// NewKnowledgeService 创建知识库服务
func NewKnowledgeService(c *content.Content, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{
		articles:         c.Articles,
		faqCategories:    c.FAQCategories,
		supportFAQ:       model.FlattenFAQ(c.FAQCategories),
		faqItems:         c.FAQItems,
		blogPosts:        c.BlogPosts,
		ticketCategories: c.TicketCategories,
		logger:           logger,
	}
}

// Articles 检索知识库文章
func (s *KnowledgeService) Articles(query, category string) filter.Result[model.Article] {
	res := filter.Run(s.articles, query, category)
	s.logSearch("articles", res.Query, res.Category, len(res.Items))
	return res
}

// Article 按 ID 查找文章
func (s *KnowledgeService) Article(id string) (model.Article, error) {
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Article{}, ErrArticleNotFound
}

// ArticleByTitle 按标题查找文章，用于推荐消息中的选项
func (s *KnowledgeService) ArticleByTitle(title string) (model.Article, error) {
	for _, a := range s.articles {
		if a.Title == title {
			return a, nil
		}
	}
	return model.Article{}, ErrArticleNotFound
}

// FAQ 检索全站 FAQ
func (s *KnowledgeService) FAQ(query, category string) filter.Result[model.FAQItem] {
	res := filter.Run(s.faqItems, query, category)
	s.logSearch("faq", res.Query, res.Category, len(res.Items))
	return res
}

// SupportFAQ 检索支持中心分组 FAQ
func (s *KnowledgeService) SupportFAQ(query, category string) filter.Result[model.FAQEntry] {
	res := filter.Run(s.supportFAQ, query, category)
	s.logSearch("support_faq", res.Query, res.Category, len(res.Items))
	return res
}

// FAQCategories 支持中心 FAQ 分组
func (s *KnowledgeService) FAQCategories() []model.FAQCategory {
	return s.faqCategories
}

// Blog 检索博客
func (s *KnowledgeService) Blog(query, category string) filter.Result[model.BlogPost] {
	res := filter.Run(s.blogPosts, query, category)
	s.logSearch("blog", res.Query, res.Category, len(res.Items))
	return res
}

// TicketCategories 检索工单分类
func (s *KnowledgeService) TicketCategories(query string) filter.Result[model.TicketCategory] {
	return filter.Run(s.ticketCategories, query, model.CategoryAll)
}

// HasTicketCategory 判断工单分类是否存在
func (s *KnowledgeService) HasTicketCategory(id string) bool {
	for _, c := range s.ticketCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *KnowledgeService) logSearch(collection, query, category string, hits int) {
	s.logger.Debug("检索知识",
		zap.String("collection", collection),
		zap.String("query", query),
		zap.String("category", category),
		zap.Int("hits", hits))
}
