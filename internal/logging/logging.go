// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options 控制日志输出目标与格式。
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// New 根据选项构造 logger，Writer 为空时输出到 stdout。
func New(opts Options) zerolog.Logger {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	if strings.EqualFold(strings.TrimSpace(opts.Format), "console") {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// Setup 构造 logger 并替换 zerolog/log 的全局实例。
func Setup(opts Options) zerolog.Logger {
	logger := New(opts)
	log.Logger = logger
	return logger
}

// ParseLevel 解析日志级别，无法识别时回退到 info。
func ParseLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
