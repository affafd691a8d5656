// Package responder 基于关键词规则的客服应答。
//
// 匹配分两阶段：先检测问候语，未命中再按词典定义顺序做子串扫描，
// 首个命中的关键词胜出；都未命中时返回兜底回复，保证每个输入都有回答。
package responder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/supportbot/support-center/internal/model"
)

// Source 回复来源
type Source string

const (
	SourceQuickReply Source = "quick_reply"
	SourceGreeting   Source = "greeting"
	SourceKeyword    Source = "keyword"
	SourceFallback   Source = "fallback"
	SourceArticle    Source = "article" // 选中了推荐文章
)

// DefaultMaxSuggestions 每次最多推荐的文章数
const DefaultMaxSuggestions = 2

// 问候词后只能是空白、常见标点或结尾，"hi-tech"、"hey-ho" 不算问候
var greetingPattern = regexp.MustCompile(`^(hi|hello|hey)([\s,.!?]|$)`)

// Config 构造参数
type Config struct {
	Keywords       []model.KeywordResponse
	QuickReplies   []model.QuickReply
	Greeting       string
	Fallback       string
	Articles       []model.Article
	MaxSuggestions int
}

// Response 应答结果
type Response struct {
	Reply             string          `json:"reply"`
	Source            Source          `json:"source"`
	Keyword           string          `json:"keyword,omitempty"`
	SuggestedArticles []model.Article `json:"suggestedArticles,omitempty"`
}

// Responder 规则应答器，构造后只读，可并发使用
type Responder struct {
	keywords       []model.KeywordResponse
	quickReplies   map[string]string
	greeting       string
	fallback       string
	articles       []model.Article
	maxSuggestions int
}

// New 创建应答器，复制传入的词典和文章
func New(cfg Config) (*Responder, error) {
	if strings.TrimSpace(cfg.Greeting) == "" || strings.TrimSpace(cfg.Fallback) == "" {
		return nil, fmt.Errorf("问候语和兜底回复不能为空")
	}

	r := &Responder{
		keywords:       make([]model.KeywordResponse, 0, len(cfg.Keywords)),
		quickReplies:   make(map[string]string, len(cfg.QuickReplies)),
		greeting:       cfg.Greeting,
		fallback:       cfg.Fallback,
		articles:       append([]model.Article(nil), cfg.Articles...),
		maxSuggestions: cfg.MaxSuggestions,
	}
	if r.maxSuggestions <= 0 {
		r.maxSuggestions = DefaultMaxSuggestions
	}

	seen := make(map[string]struct{}, len(cfg.Keywords))
	for _, kr := range cfg.Keywords {
		k := strings.ToLower(strings.TrimSpace(kr.Keyword))
		if k == "" {
			return nil, fmt.Errorf("关键词不能为空")
		}
		if _, ok := seen[k]; ok {
			return nil, fmt.Errorf("关键词重复: %s", k)
		}
		seen[k] = struct{}{}
		r.keywords = append(r.keywords, model.KeywordResponse{Keyword: k, Reply: kr.Reply})
	}

	for _, qr := range cfg.QuickReplies {
		r.quickReplies[qr.Phrase] = qr.Reply
	}
	return r, nil
}

// Respond 处理用户自由输入，附带相关文章推荐
func (r *Responder) Respond(input string) Response {
	resp := r.match(normalize(input))
	resp.SuggestedArticles = r.Suggest(input)
	return resp
}

// QuickReply 处理快捷回复。短语与预设完全一致时直接返回预设回复，
// 否则与自由输入走相同的匹配流程。快捷回复不推荐文章。
func (r *Responder) QuickReply(phrase string) Response {
	if reply, ok := r.quickReplies[phrase]; ok {
		return Response{Reply: reply, Source: SourceQuickReply}
	}
	return r.match(normalize(phrase))
}

// Suggest 返回标题或摘要包含输入的文章，大小写不敏感，最多 maxSuggestions 篇
func (r *Responder) Suggest(input string) []model.Article {
	q := normalize(input)
	if q == "" {
		return nil
	}

	var out []model.Article
	for _, a := range r.articles {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Excerpt), q) {
			out = append(out, a)
			if len(out) == r.maxSuggestions {
				break
			}
		}
	}
	return out
}

// IsGreeting 判断输入是否为问候语
func IsGreeting(input string) bool {
	return greetingPattern.MatchString(normalize(input))
}

func (r *Responder) match(normalized string) Response {
	if greetingPattern.MatchString(normalized) {
		return Response{Reply: r.greeting, Source: SourceGreeting}
	}
	for _, kr := range r.keywords {
		if strings.Contains(normalized, kr.Keyword) {
			return Response{Reply: kr.Reply, Source: SourceKeyword, Keyword: kr.Keyword}
		}
	}
	return Response{Reply: r.fallback, Source: SourceFallback}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
