// Package notify is the fire-and-forget message surface used after writes.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Level 区分成功与错误提示。
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message 是一条待展示的提示。
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Notifier 发送提示，不返回结果，也不影响调用方的控制流。
type Notifier interface {
	Success(ctx context.Context, text string)
	Error(ctx context.Context, text string)
}

// LogNotifier 把提示写入日志。
type LogNotifier struct{}

func (LogNotifier) Success(_ context.Context, text string) {
	log.Info().Str("notify", string(LevelSuccess)).Msg(text)
}

func (LogNotifier) Error(_ context.Context, text string) {
	log.Warn().Str("notify", string(LevelError)).Msg(text)
}

// Collector 收集单次请求内产生的提示，由 handler 在响应时取出。
type Collector struct {
	mu       sync.Mutex
	messages []Message
}

type collectorKey struct{}

// WithCollector 在 ctx 上挂载一个新的 Collector。
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// CollectorFrom 取出 ctx 上的 Collector，没有时返回 nil。
func CollectorFrom(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

func (c *Collector) add(level Level, text string) {
	c.mu.Lock()
	c.messages = append(c.messages, Message{Level: level, Text: text})
	c.mu.Unlock()
}

// Messages 返回已收集提示的副本。
func (c *Collector) Messages() []Message {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// ContextNotifier 把提示投递到 ctx 上的 Collector；ctx 上没有时丢弃。
type ContextNotifier struct{}

func (ContextNotifier) Success(ctx context.Context, text string) {
	if c := CollectorFrom(ctx); c != nil {
		c.add(LevelSuccess, text)
	}
}

func (ContextNotifier) Error(ctx context.Context, text string) {
	if c := CollectorFrom(ctx); c != nil {
		c.add(LevelError, text)
	}
}

// Multi 依次转发给多个 Notifier。
type Multi []Notifier

func (m Multi) Success(ctx context.Context, text string) {
	for _, n := range m {
		n.Success(ctx, text)
	}
}

func (m Multi) Error(ctx context.Context, text string) {
	for _, n := range m {
		n.Error(ctx, text)
	}
}
