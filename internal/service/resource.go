package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/storefront/internal/notify"
	"github.com/storefront/internal/store"
)

var (
	// ErrPrecondition 是所有“未联系存储即失败”的错误的共同根。
	ErrPrecondition = errors.New("precondition failed")
	// ErrActorRequired 在未登录时更新需要操作者的记录。
	ErrActorRequired = fmt.Errorf("%w: authenticated actor required", ErrPrecondition)
	// ErrRecordRequired 在本地没有可更新的记录时返回。
	ErrRecordRequired = fmt.Errorf("%w: no active record to update", ErrPrecondition)
	// ErrUnknownField 在写入不允许的列时返回。
	ErrUnknownField = fmt.Errorf("%w: unknown field", ErrPrecondition)
	// ErrInvalidField 在字段值类型不正确时返回。
	ErrInvalidField = fmt.Errorf("%w: invalid field value", ErrPrecondition)
	// ErrNoChanges 在没有提供任何字段时返回。
	ErrNoChanges = fmt.Errorf("%w: no fields to update", ErrPrecondition)
)

// Record 是单行内容记录的最小约束。
type Record interface {
	RecordID() uint
}

// WriteKind 标记一次写入走插入还是按主键更新。
type WriteKind int

const (
	WriteInsert WriteKind = iota
	WriteUpdate
)

func (k WriteKind) String() string {
	if k == WriteInsert {
		return "insert"
	}
	return "update"
}

// DecideWrite 根据当前是否已有记录选择写入路径。
func DecideWrite(exists bool) WriteKind {
	if exists {
		return WriteUpdate
	}
	return WriteInsert
}

// Writer 把部分字段写入存储。current 为 nil 表示本地没有记录。
type Writer[T Record] interface {
	Write(ctx context.Context, s store.Store, current *T, fields store.Fields) error
}

// Messages 是写入成功或失败时展示给用户的提示。
type Messages struct {
	Saved  string
	Failed string
}

var activeFilter = store.Filter{"is_active": true}

// Resource 持有一条 is_active 记录的本地副本与加载状态。
//
// 每次 Load 领取一个递增序号，只有最后发出的 Load 的结果会被应用；
// Update 成功后发出的重新加载因此总会覆盖更早仍在进行中的加载。
// loading 以进行中的加载数计算，所有加载结束后必然回到 false。
//
// Update 之间互斥：先等待进行中的加载结束，再读取本地副本、写入并重新加载，
// 后到的写入因此总能看到前一次写入的结果，不会重复插入激活记录。
type Resource[T Record] struct {
	table    string
	store    store.Store
	writer   Writer[T]
	fields   fieldSpec
	notifier notify.Notifier
	messages Messages

	mu       sync.Mutex
	idle     *sync.Cond
	record   *T
	inflight int
	issued   uint64
	subs     map[int]func(*T)
	nextSub  int

	// writeMu 串行化 Update；publishMu 保证订阅回调按应用顺序送达。
	writeMu   sync.Mutex
	publishMu sync.Mutex

	attach sync.Once
}

func newResource[T Record](table string, s store.Store, w Writer[T], fields fieldSpec, n notify.Notifier, msgs Messages) *Resource[T] {
	if n == nil {
		n = notify.LogNotifier{}
	}
	r := &Resource[T]{
		table:    table,
		store:    s,
		writer:   w,
		fields:   fields,
		notifier: n,
		messages: msgs,
		subs:     make(map[int]func(*T)),
	}
	r.idle = sync.NewCond(&r.mu)
	return r
}

// Table 返回记录所在的表。
func (r *Resource[T]) Table() string {
	return r.table
}

// Attach 在资源首次挂载时执行一次 Load，之后的调用不再加载。
func (r *Resource[T]) Attach(ctx context.Context) {
	r.attach.Do(func() {
		r.Load(ctx)
	})
}

// Load 拉取当前 is_active 记录。
// 记录不存在时本地副本置空；其他失败只记录日志并保留旧值。
func (r *Resource[T]) Load(ctx context.Context) {
	token := r.begin()
	defer r.finish()

	var row T
	err := r.store.SelectSingle(ctx, r.table, activeFilter, &row)
	switch {
	case err == nil:
		r.apply(token, &row)
	case errors.Is(err, store.ErrNotFound):
		r.apply(token, nil)
	default:
		log.Error().Err(err).Str("table", r.table).Msg("load active record failed, keeping cached copy")
	}
}

// Update 写入部分字段，成功后重新加载以获得存储中的最终状态。
// 前置条件失败时不会联系存储；存储失败会提示错误，本地状态保持不变。
func (r *Resource[T]) Update(ctx context.Context, fields store.Fields) error {
	normalized, err := r.fields.normalize(fields)
	if err != nil {
		log.Warn().Err(err).Str("table", r.table).Msg("rejected content update")
		return err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.waitIdle()
	current, _ := r.snapshot()
	if err := r.writer.Write(ctx, r.store, current, normalized); err != nil {
		if errors.Is(err, ErrPrecondition) {
			log.Warn().Err(err).Str("table", r.table).Msg("content update precondition failed")
			return err
		}
		log.Error().Err(err).Str("table", r.table).Msg("content update failed")
		r.notifier.Error(ctx, r.messages.Failed)
		return fmt.Errorf("update %s: %w", r.table, err)
	}

	r.Load(ctx)
	r.notifier.Success(ctx, r.messages.Saved)
	return nil
}

// Record 返回本地副本，ok 为 false 表示记录不存在。
func (r *Resource[T]) Record() (T, bool) {
	current, ok := r.snapshot()
	if !ok {
		var zero T
		return zero, false
	}
	return *current, true
}

// Loading 在仍有加载进行中时返回 true。
func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Subscribe 注册回调，每次加载结果被应用后以最新记录调用（不存在时为 nil）。
// 回调按应用顺序串行执行，不能在回调中调用 Load 或 Update。
// 返回的函数用于取消订阅。
func (r *Resource[T]) Subscribe(fn func(*T)) (cancel func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

func (r *Resource[T]) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
	r.inflight++
	return r.issued
}

func (r *Resource[T]) finish() {
	r.mu.Lock()
	r.inflight--
	if r.inflight == 0 {
		r.idle.Broadcast()
	}
	r.mu.Unlock()
}

// waitIdle 阻塞到当前没有进行中的加载。
func (r *Resource[T]) waitIdle() {
	r.mu.Lock()
	for r.inflight > 0 {
		r.idle.Wait()
	}
	r.mu.Unlock()
}

func (r *Resource[T]) apply(token uint64, row *T) {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	r.mu.Lock()
	if token != r.issued {
		r.mu.Unlock()
		log.Debug().Str("table", r.table).Uint64("token", token).Msg("discarding superseded load")
		return
	}
	r.record = row
	listeners := make([]func(*T), 0, len(r.subs))
	for _, fn := range r.subs {
		listeners = append(listeners, fn)
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		if row == nil {
			fn(nil)
			continue
		}
		copied := *row
		fn(&copied)
	}
}

func (r *Resource[T]) snapshot() (*T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.record == nil {
		return nil, false
	}
	copied := *r.record
	return &copied, true
}

// upsertWriter 无记录时插入新的激活记录，有记录时按主键更新。
type upsertWriter[T Record] struct {
	table string
	now   func() time.Time
}

func (w upsertWriter[T]) Write(ctx context.Context, s store.Store, current *T, fields store.Fields) error {
	switch DecideWrite(current != nil) {
	case WriteInsert:
		return w.insert(ctx, s, fields)
	default:
		return w.update(ctx, s, (*current).RecordID(), fields)
	}
}

func (w upsertWriter[T]) insert(ctx context.Context, s store.Store, fields store.Fields) error {
	row := fields.Clone()
	row["is_active"] = true
	if actor, ok := actorID(ctx); ok {
		row["created_by"] = actor
	}
	return s.Insert(ctx, w.table, row)
}

func (w upsertWriter[T]) update(ctx context.Context, s store.Store, id uint, fields store.Fields) error {
	row := fields.Clone()
	row["updated_at"] = w.now()
	return s.UpdateByID(ctx, w.table, id, row)
}

// guardedWriter 只更新已有记录，并要求请求携带已登录的操作者。
type guardedWriter[T Record] struct {
	table string
	now   func() time.Time
}

func (w guardedWriter[T]) Write(ctx context.Context, s store.Store, current *T, fields store.Fields) error {
	if _, ok := actorID(ctx); !ok {
		return ErrActorRequired
	}
	if current == nil {
		return ErrRecordRequired
	}

	row := fields.Clone()
	row["updated_at"] = w.now()
	return s.UpdateByID(ctx, w.table, (*current).RecordID(), row)
}
