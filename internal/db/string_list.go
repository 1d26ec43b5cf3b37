package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList 以 JSON 文本形式存储字符串数组，兼容 sqlite 与 postgres。
type StringList []string

// Value 实现 driver.Valuer。nil 保存为 NULL。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	encoded, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encode string list: %w", err)
	}
	return string(encoded), nil
}

// Scan 实现 sql.Scanner。
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = items
	return nil
}
