// Package content 提供支持中心使用的静态内容：关键词词典、快捷回复、
// 知识库文章、FAQ、博客文章和工单分类。内容在启动时加载一次，运行期只读。
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/supportbot/support-center/internal/model"
	"gopkg.in/yaml.v3"
)

// Content 静态内容集合
type Content struct {
	Greeting         string                  `yaml:"greeting"`
	Fallback         string                  `yaml:"fallback"`
	Welcome          string                  `yaml:"welcome"`
	Keywords         []model.KeywordResponse `yaml:"keywords"`
	QuickReplies     []model.QuickReply      `yaml:"quickReplies"`
	Articles         []model.Article         `yaml:"articles"`
	FAQCategories    []model.FAQCategory     `yaml:"faqCategories"`
	FAQItems         []model.FAQItem         `yaml:"faqItems"`
	BlogPosts        []model.BlogPost        `yaml:"blogPosts"`
	TicketCategories []model.TicketCategory  `yaml:"ticketCategories"`
}

var (
	ErrEmptyKeyword     = errors.New("关键词不能为空")
	ErrDuplicateKeyword = errors.New("关键词重复")
	ErrDuplicatePhrase  = errors.New("快捷回复短语重复")
	ErrMissingReply     = errors.New("缺少问候语或兜底回复")
)

// Load 从 YAML 文件加载内容，文件中缺失的部分使用内置内容
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取内容文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 内容并与内置内容合并
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("解析内容文件失败: %w", err)
	}
	c.fillFrom(Default())
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) fillFrom(d *Content) {
	if c.Greeting == "" {
		c.Greeting = d.Greeting
	}
	if c.Fallback == "" {
		c.Fallback = d.Fallback
	}
	if c.Welcome == "" {
		c.Welcome = d.Welcome
	}
	if c.Keywords == nil {
		c.Keywords = d.Keywords
	}
	if c.QuickReplies == nil {
		c.QuickReplies = d.QuickReplies
	}
	if c.Articles == nil {
		c.Articles = d.Articles
	}
	if c.FAQCategories == nil {
		c.FAQCategories = d.FAQCategories
	}
	if c.FAQItems == nil {
		c.FAQItems = d.FAQItems
	}
	if c.BlogPosts == nil {
		c.BlogPosts = d.BlogPosts
	}
	if c.TicketCategories == nil {
		c.TicketCategories = d.TicketCategories
	}
}

// Validate 校验词典：关键词非空、小写后唯一；快捷短语唯一
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Greeting) == "" || strings.TrimSpace(c.Fallback) == "" {
		return ErrMissingReply
	}

	seen := make(map[string]struct{}, len(c.Keywords))
	for i, kr := range c.Keywords {
		k := strings.ToLower(strings.TrimSpace(kr.Keyword))
		if k == "" {
			return fmt.Errorf("第 %d 个关键词: %w", i, ErrEmptyKeyword)
		}
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%q: %w", k, ErrDuplicateKeyword)
		}
		seen[k] = struct{}{}
	}

	phrases := make(map[string]struct{}, len(c.QuickReplies))
	for _, qr := range c.QuickReplies {
		if _, ok := phrases[qr.Phrase]; ok {
			return fmt.Errorf("%q: %w", qr.Phrase, ErrDuplicatePhrase)
		}
		phrases[qr.Phrase] = struct{}{}
	}
	return nil
}

// QuickReplyPhrases 快捷回复短语列表（按定义顺序）
func (c *Content) QuickReplyPhrases() []string {
	out := make([]string, len(c.QuickReplies))
	for i, qr := range c.QuickReplies {
		out[i] = qr.Phrase
	}
	return out
}
