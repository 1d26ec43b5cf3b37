// Package store is the table-oriented client the content services talk to.
//
// It mirrors the small query surface of a hosted row store: filtered select,
// single-row fetch, insert and update-by-id. Absence of a row is reported as
// ErrNotFound so callers can tell it apart from a failed call.
package store

import (
	"context"
	"errors"
)

// ErrNotFound 表示没有匹配的行，调用方应视为“记录不存在”而非失败。
var ErrNotFound = errors.New("store: no matching row")

// ErrNoFields 在写入时未提供任何字段时返回。
var ErrNoFields = errors.New("store: no fields to write")

// Filter 是按列名等值匹配的查询条件。
type Filter map[string]any

// Fields 是按列名给出的写入字段。
type Fields map[string]any

// Clone 返回浅拷贝，写路径在合并额外字段前使用，避免修改调用方的 map。
func (f Fields) Clone() Fields {
	out := make(Fields, len(f)+2)
	for key, value := range f {
		out[key] = value
	}
	return out
}

// Store 是远端表存储的最小接口。
type Store interface {
	Select(ctx context.Context, table string, filter Filter, dest any) error
	SelectSingle(ctx context.Context, table string, filter Filter, dest any) error
	Insert(ctx context.Context, table string, fields Fields) error
	UpdateByID(ctx context.Context, table string, id uint, fields Fields) error
}
