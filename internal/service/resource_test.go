package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/storefront/internal/auth"
	"github.com/storefront/internal/db"
	"github.com/storefront/internal/notify"
	"github.com/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateCall struct {
	table  string
	id     uint
	fields store.Fields
}

// fakeStore is a scripted stand-in for the remote store. SelectSingleFunc,
// when set, overrides the default behaviour of returning active.
type fakeStore[T any] struct {
	mu sync.Mutex

	active     *T
	selectErr  error
	insertErr  error
	updateErr  error
	afterWrite func(fields store.Fields)

	SelectSingleFunc func(ctx context.Context, dest *T) error

	selects int
	inserts []store.Fields
	updates []updateCall
}

func (f *fakeStore[T]) Select(context.Context, string, store.Filter, any) error {
	return errors.New("not used")
}

func (f *fakeStore[T]) SelectSingle(ctx context.Context, _ string, filter store.Filter, dest any) error {
	f.mu.Lock()
	f.selects++
	override := f.SelectSingleFunc
	f.mu.Unlock()

	if filter["is_active"] != true {
		return errors.New("expected is_active filter")
	}
	if override != nil {
		return override(ctx, dest.(*T))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectErr != nil {
		return f.selectErr
	}
	if f.active == nil {
		return store.ErrNotFound
	}
	*dest.(*T) = *f.active
	return nil
}

func (f *fakeStore[T]) Insert(_ context.Context, _ string, fields store.Fields) error {
	f.mu.Lock()
	f.inserts = append(f.inserts, fields)
	err, hook := f.insertErr, f.afterWrite
	f.mu.Unlock()

	if err == nil && hook != nil {
		hook(fields)
	}
	return err
}

func (f *fakeStore[T]) UpdateByID(_ context.Context, table string, id uint, fields store.Fields) error {
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{table: table, id: id, fields: fields})
	err, hook := f.updateErr, f.afterWrite
	f.mu.Unlock()

	if err == nil && hook != nil {
		hook(fields)
	}
	return err
}

func (f *fakeStore[T]) setActive(row *T) {
	f.mu.Lock()
	f.active = row
	f.mu.Unlock()
}

func (f *fakeStore[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selects + len(f.inserts) + len(f.updates)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(_ context.Context, text string) {
	n.mu.Lock()
	n.successes = append(n.successes, text)
	n.mu.Unlock()
}

func (n *recordingNotifier) Error(_ context.Context, text string) {
	n.mu.Lock()
	n.errors = append(n.errors, text)
	n.mu.Unlock()
}

var _ notify.Notifier = (*recordingNotifier)(nil)

func strPtr(v string) *string {
	return &v
}

func withActor(ctx context.Context) context.Context {
	return auth.WithActor(ctx, auth.Actor{ID: "actor-1", Username: "admin"})
}

func TestDecideWrite(t *testing.T) {
	assert.Equal(t, WriteInsert, DecideWrite(false))
	assert.Equal(t, WriteUpdate, DecideWrite(true))
	assert.Equal(t, "insert", WriteInsert.String())
	assert.Equal(t, "update", WriteUpdate.String())
}

func TestLoadWithNoActiveRowIsAbsentWithoutNotification(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{}
	notifier := &recordingNotifier{}
	svc := NewAboutContentService(fake, notifier)

	svc.Load(context.Background())

	_, ok := svc.Record()
	assert.False(t, ok)
	assert.False(t, svc.Loading())
	assert.Empty(t, notifier.errors)
}

func TestLoadFailureKeepsStaleRecord(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{active: &db.AboutContent{ID: 3, PageTitle: strPtr("About")}}
	notifier := &recordingNotifier{}
	svc := NewAboutContentService(fake, notifier)
	ctx := context.Background()

	svc.Load(ctx)
	fake.mu.Lock()
	fake.selectErr = errors.New("network down")
	fake.mu.Unlock()
	svc.Load(ctx)

	record, ok := svc.Record()
	require.True(t, ok)
	assert.Equal(t, "About", *record.PageTitle)
	assert.False(t, svc.Loading(), "loading must be released after a failure")
	assert.Empty(t, notifier.errors, "read failures are not surfaced")
}

func TestLoadNotFoundClearsRecord(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{active: &db.AboutContent{ID: 3}}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	svc.Load(ctx)
	_, ok := svc.Record()
	require.True(t, ok)

	fake.setActive(nil)
	svc.Load(ctx)
	_, ok = svc.Record()
	assert.False(t, ok)
}

func TestLoadTwiceIsIdempotent(t *testing.T) {
	fake := &fakeStore[db.ContactInfo]{active: &db.ContactInfo{ID: 1, Email: strPtr("hi@example.com"), IsActive: true}}
	svc := NewContactInfoService(fake, nil)
	ctx := context.Background()

	svc.Load(ctx)
	first, _ := svc.Record()
	svc.Load(ctx)
	second, _ := svc.Record()

	assert.Equal(t, first, second)
}

func TestLoadingIsTrueWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fake := &fakeStore[db.AboutContent]{}
	fake.SelectSingleFunc = func(_ context.Context, _ *db.AboutContent) error {
		close(started)
		<-release
		return store.ErrNotFound
	}
	svc := NewAboutContentService(fake, nil)

	done := make(chan struct{})
	go func() {
		svc.Load(context.Background())
		close(done)
	}()

	<-started
	assert.True(t, svc.Loading())
	close(release)
	<-done
	assert.False(t, svc.Loading())
}

func TestAttachLoadsExactlyOnce(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	svc.Attach(ctx)
	svc.Attach(ctx)

	assert.Equal(t, 1, fake.selects)
}

func TestSubscribersReceiveAppliedLoads(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{active: &db.AboutContent{ID: 9, Mission: strPtr("Serve")}}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	var seen []*db.AboutContent
	cancel := svc.Subscribe(func(rec *db.AboutContent) {
		seen = append(seen, rec)
	})

	svc.Load(ctx)
	fake.setActive(nil)
	svc.Load(ctx)
	cancel()
	svc.Load(ctx)

	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Equal(t, "Serve", *seen[0].Mission)
	assert.Nil(t, seen[1])
}

func TestStaleLoadIsDiscardedWhenReloadWasIssuedLater(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{}
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	var mu sync.Mutex
	call := 0
	fake.SelectSingleFunc = func(_ context.Context, dest *db.AboutContent) error {
		mu.Lock()
		call++
		n := call
		mu.Unlock()

		if n == 1 {
			close(slowStarted)
			<-releaseSlow
			*dest = db.AboutContent{ID: 1, PageTitle: strPtr("stale")}
			return nil
		}
		*dest = db.AboutContent{ID: 1, PageTitle: strPtr("fresh")}
		return nil
	}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		svc.Load(ctx)
		close(done)
	}()
	<-slowStarted

	svc.Load(ctx)
	close(releaseSlow)
	<-done

	record, ok := svc.Record()
	require.True(t, ok)
	assert.Equal(t, "fresh", *record.PageTitle)
	assert.False(t, svc.Loading())
}

func TestConcurrentUpdatesOnAbsentRecordInsertOnce(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{}
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	fake.afterWrite = func(fields store.Fields) {
		entered <- struct{}{}
		<-release
		title := fields["page_title"].(string)
		fake.setActive(&db.AboutContent{ID: 1, PageTitle: &title, IsActive: true})
	}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Update(ctx, store.Fields{"page_title": "About Us"})
		}()
	}

	<-entered
	select {
	case <-entered:
		t.Fatal("second update reached the store while the first write was pending")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Len(t, fake.inserts, 1)
	require.Len(t, fake.updates, 1)
	assert.Equal(t, uint(1), fake.updates[0].id)
}

func TestUpdateWaitsForInFlightLoad(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{}
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fake.SelectSingleFunc = func(_ context.Context, dest *db.AboutContent) error {
		once.Do(func() {
			close(started)
			<-release
		})
		*dest = db.AboutContent{ID: 4, PageTitle: strPtr("Existing"), IsActive: true}
		return nil
	}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	go svc.Attach(ctx)
	<-started

	done := make(chan error, 1)
	go func() {
		done <- svc.Update(ctx, store.Fields{"mission": "Serve"})
	}()

	select {
	case <-done:
		t.Fatal("update finished before the in-flight load")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	require.NoError(t, <-done)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Empty(t, fake.inserts)
	require.Len(t, fake.updates, 1)
	assert.Equal(t, uint(4), fake.updates[0].id)
}

func TestSubscribersEndOnTheAppliedRecord(t *testing.T) {
	fake := &fakeStore[db.AboutContent]{}
	secondStarted := make(chan struct{})
	var mu sync.Mutex
	call := 0
	fake.SelectSingleFunc = func(_ context.Context, dest *db.AboutContent) error {
		mu.Lock()
		call++
		n := call
		mu.Unlock()

		if n == 2 {
			close(secondStarted)
			*dest = db.AboutContent{ID: 1, PageTitle: strPtr("second")}
			return nil
		}
		*dest = db.AboutContent{ID: 1, PageTitle: strPtr("first")}
		return nil
	}
	svc := NewAboutContentService(fake, nil)
	ctx := context.Background()

	firstDelivered := make(chan struct{})
	releaseFirst := make(chan struct{})
	var (
		seenMu     sync.Mutex
		deliveries int
		seen       []string
	)
	svc.Subscribe(func(rec *db.AboutContent) {
		seenMu.Lock()
		deliveries++
		n := deliveries
		seenMu.Unlock()
		if n == 1 {
			close(firstDelivered)
			<-releaseFirst
		}

		seenMu.Lock()
		seen = append(seen, *rec.PageTitle)
		seenMu.Unlock()
	})

	firstDone := make(chan struct{})
	go func() {
		svc.Load(ctx)
		close(firstDone)
	}()
	<-firstDelivered

	secondDone := make(chan struct{})
	go func() {
		svc.Load(ctx)
		close(secondDone)
	}()
	<-secondStarted
	select {
	case <-secondDone:
	case <-time.After(50 * time.Millisecond):
	}
	close(releaseFirst)
	<-firstDone
	<-secondDone

	record, ok := svc.Record()
	require.True(t, ok)
	seenMu.Lock()
	defer seenMu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, *record.PageTitle, seen[len(seen)-1])
	assert.Equal(t, "second", seen[len(seen)-1])
}
