// Package search filters an in-memory list by case-insensitive substring.
package search

import (
	"strings"
	"sync"
)

// Item 是可被搜索的条目，暴露名称、描述与分类三个字段。
type Item interface {
	SearchFields() (name, description, category string)
}

// Match 返回 name/description/category 任一字段包含 query（忽略大小写）的条目，保持原有顺序。
// query 先去除首尾空白；为空时返回 nil，调用方应改用 Run 区分“已清空”与“无结果”。
func Match[T Item](query string, items []T) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	matches := make([]T, 0)
	for _, item := range items {
		name, description, category := item.SearchFields()
		if strings.Contains(strings.ToLower(name), needle) ||
			strings.Contains(strings.ToLower(description), needle) ||
			strings.Contains(strings.ToLower(category), needle) {
			matches = append(matches, item)
		}
	}
	return matches
}

// Run 只调用两个回调之一：query 去空白后为空时调用 onClear，否则以匹配结果调用 onResults。
// onResults 收到空切片表示“没有匹配”，与清空是两种状态。
func Run[T Item](query string, items []T, onResults func([]T), onClear func()) {
	if strings.TrimSpace(query) == "" {
		if onClear != nil {
			onClear()
		}
		return
	}

	matches := Match(query, items)
	if onResults != nil {
		onResults(matches)
	}
}

// Box 保存输入框中可见的查询文本，并在每次输入或清空时触发回调。
type Box[T Item] struct {
	mu        sync.Mutex
	query     string
	items     []T
	OnResults func([]T)
	OnClear   func()
}

// NewBox 以固定条目列表构造 Box。
func NewBox[T Item](items []T, onResults func([]T), onClear func()) *Box[T] {
	return &Box[T]{items: items, OnResults: onResults, OnClear: onClear}
}

// Type 记录新的可见文本并执行搜索。
func (b *Box[T]) Type(query string) {
	b.mu.Lock()
	b.query = query
	items := b.items
	b.mu.Unlock()

	Run(query, items, b.OnResults, b.OnClear)
}

// Clear 把可见文本重置为空并触发 OnClear。
func (b *Box[T]) Clear() {
	b.mu.Lock()
	b.query = ""
	b.mu.Unlock()

	if b.OnClear != nil {
		b.OnClear()
	}
}

// Query 返回当前可见文本。
func (b *Box[T]) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}
