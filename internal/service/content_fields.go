package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront/internal/auth"
	"github.com/storefront/internal/db"
	"github.com/storefront/internal/store"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldList
)

// fieldSpec 是允许由调用方写入的列及其类型。
type fieldSpec map[string]fieldKind

// normalize 校验列名并把 JSON 解码出的值转换为存储可接受的类型。
func (spec fieldSpec) normalize(fields store.Fields) (store.Fields, error) {
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	out := make(store.Fields, len(fields))
	for key, raw := range fields {
		kind, ok := spec[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}

		var (
			value any
			err   error
		)
		switch kind {
		case fieldList:
			value, err = toStringList(raw)
		default:
			value, err = toNullableText(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, key, err)
		}
		out[key] = value
	}
	return out, nil
}

func toNullableText(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.TrimSpace(v), nil
	case *string:
		if v == nil {
			return nil, nil
		}
		return strings.TrimSpace(*v), nil
	default:
		return nil, fmt.Errorf("expected string, got %T", raw)
	}
}

func toStringList(raw any) (any, error) {
	var items []string
	switch v := raw.(type) {
	case nil:
		return db.StringList(nil), nil
	case db.StringList:
		items = v
	case []string:
		items = v
	case []any:
		items = make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("expected string list, got element %T", entry)
			}
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("expected string list, got %T", raw)
	}

	cleaned := make(db.StringList, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned, nil
}

func actorID(ctx context.Context) (string, bool) {
	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return "", false
	}
	return actor.ID, true
}
