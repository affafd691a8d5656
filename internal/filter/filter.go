// Package filter 实现 FAQ、文章、工单分类等静态记录的子串过滤。
package filter

import (
	"strings"

	"github.com/supportbot/support-center/internal/model"
)

// Record 可过滤的记录
type Record interface {
	// SearchText 返回参与检索的字段（标题/问题、正文/回答、标签）
	SearchText() []string
	// InCategory 判断记录是否属于指定分类
	InCategory(id string) bool
}

// Status 过滤结果状态
type Status string

const (
	StatusBrowse    Status = "browse"     // 无检索词，按分类浏览
	StatusResults   Status = "results"    // 有匹配
	StatusNoResults Status = "no_results" // 零匹配，前端需展示空结果提示
)

// Result 过滤结果
type Result[T Record] struct {
	Items    []T    `json:"items"`
	Query    string `json:"query,omitempty"`
	Category string `json:"category"`
	Status   Status `json:"status"`
}

// Apply 过滤记录，不修改 records，保持原有顺序。
// query 非空时忽略 category，在所有记录中做大小写不敏感的子串匹配；
// query 为空时按分类筛选，CategoryAll 或空分类匹配全部。
func Apply[T Record](records []T, query, category string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(records))
	for _, r := range records {
		if query != "" {
			if matches(r, query) {
				out = append(out, r)
			}
			continue
		}
		if category == "" || category == model.CategoryAll || r.InCategory(category) {
			out = append(out, r)
		}
	}
	return out
}

// Run 过滤并附带结果状态
func Run[T Record](records []T, query, category string) Result[T] {
	query = strings.TrimSpace(query)
	if category == "" {
		category = model.CategoryAll
	}
	items := Apply(records, query, category)

	status := StatusBrowse
	switch {
	case len(items) == 0:
		status = StatusNoResults
	case query != "":
		status = StatusResults
	}
	return Result[T]{Items: items, Query: query, Category: category, Status: status}
}

func matches(r Record, lowerQuery string) bool {
	for _, field := range r.SearchText() {
		if strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}
