package filter

import (
	"strings"
	"sync"

	"github.com/supportbot/support-center/internal/model"
)

// View 带记忆的过滤视图。
// 清空检索词后恢复为最后一次选中的分类，而不是默认分类。
type View[T Record] struct {
	mu       sync.Mutex
	records  []T
	query    string
	category string
}

// NewView 创建过滤视图，records 视为只读
func NewView[T Record](records []T) *View[T] {
	return &View[T]{records: records, category: model.CategoryAll}
}

// SetQuery 设置检索词，空串等价于 Clear
func (v *View[T]) SetQuery(query string) Result[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = strings.TrimSpace(query)
	return Run(v.records, v.query, v.category)
}

// SetCategory 切换分类，检索词保持不变
func (v *View[T]) SetCategory(category string) Result[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	if category == "" {
		category = model.CategoryAll
	}
	v.category = category
	return Run(v.records, v.query, v.category)
}

// Clear 清空检索词
func (v *View[T]) Clear() Result[T] {
	return v.SetQuery("")
}

// Result 当前视图结果
func (v *View[T]) Result() Result[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Run(v.records, v.query, v.category)
}

// Category 当前分类
func (v *View[T]) Category() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.category
}
