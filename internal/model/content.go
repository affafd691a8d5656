package model

import "strings"

// CategoryAll 匹配全部记录的哨兵分类
const CategoryAll = "all"

// Article 知识库文章
type Article struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt" yaml:"excerpt"`
	Category string `json:"category" yaml:"category"`
	ReadTime string `json:"readTime,omitempty" yaml:"readTime"`
}

func (a Article) SearchText() []string { return []string{a.Title, a.Excerpt} }

func (a Article) InCategory(id string) bool { return a.Category == id }

// FAQCategory 支持中心的 FAQ 分组
type FAQCategory struct {
	ID    string     `json:"id" yaml:"id"`
	Icon  string     `json:"icon" yaml:"icon"`
	Title string     `json:"title" yaml:"title"`
	Items []FAQEntry `json:"items" yaml:"items"`
}

// FAQEntry 分组内的一条问答
type FAQEntry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Category string `json:"category,omitempty" yaml:"-"` // 展开后填充
}

func (e FAQEntry) SearchText() []string { return []string{e.Question, e.Answer} }

func (e FAQEntry) InCategory(id string) bool { return e.Category == id }

// FlattenFAQ 将分组展开为带分类的条目，保持分组及条目顺序
func FlattenFAQ(categories []FAQCategory) []FAQEntry {
	var out []FAQEntry
	for _, c := range categories {
		for _, item := range c.Items {
			item.Category = c.ID
			out = append(out, item)
		}
	}
	return out
}

// FAQItem 全站 FAQ 条目，可属于多个分类
// Answer 可包含 **加粗** 标记
type FAQItem struct {
	Question   string   `json:"question" yaml:"question"`
	Answer     string   `json:"answer" yaml:"answer"`
	Icon       string   `json:"icon" yaml:"icon"`
	Categories []string `json:"categories" yaml:"categories"`
}

func (f FAQItem) SearchText() []string {
	return []string{f.Question, StripMarkup(f.Answer)}
}

func (f FAQItem) InCategory(id string) bool {
	for _, c := range f.Categories {
		if c == id {
			return true
		}
	}
	return false
}

// BlogPost 博客文章
type BlogPost struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Excerpt  string   `json:"excerpt" yaml:"excerpt"`
	Author   string   `json:"author" yaml:"author"`
	Date     string   `json:"date" yaml:"date"`
	Category string   `json:"category" yaml:"category"`
	Tags     []string `json:"tags" yaml:"tags"`
}

func (p BlogPost) SearchText() []string {
	return append([]string{p.Title, p.Excerpt}, p.Tags...)
}

func (p BlogPost) InCategory(id string) bool { return p.Category == id }

// TicketCategory 工单分类
type TicketCategory struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

func (c TicketCategory) SearchText() []string { return []string{c.Title, c.Description} }

func (c TicketCategory) InCategory(id string) bool { return c.ID == id }

// StripMarkup 去掉 **加粗** 标记
func StripMarkup(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
