package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/storefront/internal/metrics"
)

// Instrumented 为任意 Store 记录调用次数、耗时与调试日志。
type Instrumented struct {
	next    Store
	metrics *metrics.Registry
}

// Instrument 包装 next；reg 为 nil 时只记录日志。
func Instrument(next Store, reg *metrics.Registry) *Instrumented {
	return &Instrumented{next: next, metrics: reg}
}

func (s *Instrumented) Select(ctx context.Context, table string, filter Filter, dest any) error {
	start := time.Now()
	err := s.next.Select(ctx, table, filter, dest)
	s.observe(table, "select", start, err)
	return err
}

func (s *Instrumented) SelectSingle(ctx context.Context, table string, filter Filter, dest any) error {
	start := time.Now()
	err := s.next.SelectSingle(ctx, table, filter, dest)
	s.observe(table, "select_single", start, err)
	return err
}

func (s *Instrumented) Insert(ctx context.Context, table string, fields Fields) error {
	start := time.Now()
	err := s.next.Insert(ctx, table, fields)
	s.observe(table, "insert", start, err)
	return err
}

func (s *Instrumented) UpdateByID(ctx context.Context, table string, id uint, fields Fields) error {
	start := time.Now()
	err := s.next.UpdateByID(ctx, table, id, fields)
	s.observe(table, "update", start, err)
	return err
}

func (s *Instrumented) observe(table, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	s.metrics.ObserveStoreOp(table, op, outcome, elapsed)
	log.Debug().
		Str("table", table).
		Str("op", op).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("store call")
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
