package readthroughcache_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"

	readthroughcache "github.com/karupanerura/readthrough-cache"
	"github.com/karupanerura/readthrough-cache/diagnostics"
	"github.com/karupanerura/readthrough-cache/keylock"
	"github.com/karupanerura/readthrough-cache/source"
	"github.com/karupanerura/readthrough-cache/store"
	"github.com/karupanerura/readthrough-cache/store/memstore"
)

var numbers = map[int]string{1: "One", 2: "Two", 3: "Three", 4: "Four", 5: "Five"}

func TestCache_Get(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("source error")
	tests := []struct {
		name      string
		key       int
		lookup    func(context.Context, int) (string, bool, error)
		wantValue string
		wantFound bool
		wantErr   error
		wantPanic bool
	}{
		{
			name: "returns value from source",
			key:  1,
			lookup: func(_ context.Context, key int) (string, bool, error) {
				return "value1", true, nil
			},
			wantValue: "value1",
			wantFound: true,
		},
		{
			name: "returns absent key from source",
			key:  2,
			lookup: func(_ context.Context, key int) (string, bool, error) {
				return "", false, nil
			},
		},
		{
			name: "returns error from source",
			key:  3,
			lookup: func(_ context.Context, key int) (string, bool, error) {
				return "ignored", true, sourceErr
			},
			wantErr: sourceErr,
		},
		{
			name: "returns panic from source as error",
			key:  4,
			lookup: func(_ context.Context, key int) (string, bool, error) {
				panic("boom")
			},
			wantPanic: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache := readthroughcache.New[int, string](readthroughcache.DataSourceFunc[int, string](tt.lookup))
			value, found, err := cache.Get(t.Context(), tt.key)
			if tt.wantPanic {
				var recovered *panics.ErrRecovered
				if !errors.As(err, &recovered) {
					t.Fatalf("expected *panics.ErrRecovered, got %v", err)
				}
				if recovered.Value != "boom" {
					t.Errorf("expected recovered value boom, got %v", recovered.Value)
				}
			} else if err != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if found != tt.wantFound {
				t.Errorf("expected found %v, got %v", tt.wantFound, found)
			}
			if value != tt.wantValue {
				t.Errorf("expected value %q, got %q", tt.wantValue, value)
			}
		})
	}
}

func TestCache_Get_SameKeyTwice(t *testing.T) {
	t.Parallel()

	src := source.NewCountingSource[int, string](source.NewMapSource(numbers))
	recorder := &diagnostics.MemoryRecorder{}
	cache := readthroughcache.New[int, string](src, readthroughcache.WithDiagnostics[int, string](recorder))

	ctx, id := diagnostics.WithNewCallerID(t.Context())
	var details []string
	for range 2 {
		value, found, err := cache.Get(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found || value != "One" {
			t.Fatalf("expected (One, true), got (%q, %v)", value, found)
		}
		d, _ := recorder.Detail(id)
		details = append(details, d.String())
	}

	if diff := cmp.Diff([]string{"DATASOURCE/WRITE", "CACHE/NONE"}, details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
	if got := src.Count(1); got != 1 {
		t.Errorf("expected source to be called once, got %d", got)
	}
}

func TestCache_Get_ConcurrentSameKey(t *testing.T) {
	t.Parallel()

	const callers = 50

	release := make(chan struct{})
	src := source.NewCountingSource[int, string](readthroughcache.DataSourceFunc[int, string](func(ctx context.Context, key int) (string, bool, error) {
		<-release
		return numbers[key], true, nil
	}))
	recorder := &diagnostics.MemoryRecorder{}
	cache := readthroughcache.New[int, string](src, readthroughcache.WithDiagnostics[int, string](recorder))

	var eg errgroup.Group
	values := make([]string, callers)
	for i := range callers {
		eg.Go(func() error {
			ctx := diagnostics.WithCallerID(t.Context(), fmt.Sprintf("caller-%d", i))
			v, found, err := cache.Get(ctx, 3)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("caller %d: key not found", i)
			}
			values[i] = v
			return nil
		})
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range values {
		if v != "Three" {
			t.Errorf("caller %d: expected Three, got %q", i, v)
		}
	}
	if got := src.Count(3); got != 1 {
		t.Errorf("expected source to be called once, got %d", got)
	}
	if got := recorder.Count(func(d diagnostics.Detail) bool { return d.Is(diagnostics.SourceDataSource, diagnostics.LockWrite) }); got != 1 {
		t.Errorf("expected one DATASOURCE/WRITE, got %d", got)
	}
	if got := recorder.Count(func(d diagnostics.Detail) bool { return d.Source == diagnostics.SourceCache }); got != callers-1 {
		t.Errorf("expected %d CACHE lookups, got %d", callers-1, got)
	}
}

func TestCache_Get_TwoCallersOnOneKey(t *testing.T) {
	t.Parallel()

	src := source.NewCountingSource[int, string](&source.DelayedSource[int, string]{
		Source: source.NewMapSource(numbers),
		Delay:  50 * time.Millisecond,
	})
	recorder := &diagnostics.MemoryRecorder{}
	cache := readthroughcache.New[int, string](src, readthroughcache.WithDiagnostics[int, string](recorder))

	var eg errgroup.Group
	for _, id := range []string{"first", "second"} {
		eg.Go(func() error {
			v, found, err := cache.Get(diagnostics.WithCallerID(t.Context(), id), 1)
			if err != nil {
				return err
			}
			if !found || v != "One" {
				return fmt.Errorf("%s: expected (One, true), got (%q, %v)", id, v, found)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writes := recorder.Count(func(d diagnostics.Detail) bool { return d.Is(diagnostics.SourceDataSource, diagnostics.LockWrite) })
	cached := recorder.Count(func(d diagnostics.Detail) bool {
		return d.Is(diagnostics.SourceCache, diagnostics.LockRead) || d.Is(diagnostics.SourceCache, diagnostics.LockNone)
	})
	if writes != 1 || cached != 1 {
		t.Errorf("expected one DATASOURCE/WRITE and one CACHE lookup, got %v", recorder.Details())
	}
	if got := src.Total(); got != 1 {
		t.Errorf("expected source to be called once, got %d", got)
	}
}

func TestCache_Get_DistinctKeys(t *testing.T) {
	t.Parallel()

	src := source.NewCountingSource[int, string](&source.DelayedSource[int, string]{
		Source: source.NewMapSource(numbers),
		Delay:  20 * time.Millisecond,
	})
	recorder := &diagnostics.MemoryRecorder{}
	cache := readthroughcache.New[int, string](src, readthroughcache.WithDiagnostics[int, string](recorder))

	var eg errgroup.Group
	for key := range numbers {
		eg.Go(func() error {
			ctx := diagnostics.WithCallerID(t.Context(), fmt.Sprint(key))
			v, found, err := cache.Get(ctx, key)
			if err != nil {
				return err
			}
			if !found || v != numbers[key] {
				return fmt.Errorf("key %d: expected (%q, true), got (%q, %v)", key, numbers[key], v, found)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := recorder.Count(func(d diagnostics.Detail) bool { return d.Is(diagnostics.SourceDataSource, diagnostics.LockWrite) }); got != len(numbers) {
		t.Errorf("expected %d DATASOURCE/WRITE, got %d", len(numbers), got)
	}
	if got := recorder.Count(func(d diagnostics.Detail) bool { return d.Is(diagnostics.SourceCache, diagnostics.LockRead) }); got != 0 {
		t.Errorf("expected no CACHE/READ, got %d", got)
	}
	if diff := cmp.Diff(map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, src.Counts()); diff != "" {
		t.Errorf("source calls mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_Get_DistinctKeysDoNotWait(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	t.Cleanup(func() { close(blocked) })
	cache := readthroughcache.New[int, string](readthroughcache.DataSourceFunc[int, string](func(ctx context.Context, key int) (string, bool, error) {
		if key == 1 {
			<-blocked
		}
		return numbers[key], true, nil
	}))

	go func() { _, _, _ = cache.Get(context.Background(), 1) }()

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	v, found, err := cache.Get(ctx, 2)
	if err != nil || !found || v != "Two" {
		t.Errorf("expected (Two, true, nil), got (%q, %v, %v)", v, found, err)
	}
}

func TestCache_Get_AbsentKey(t *testing.T) {
	t.Parallel()

	src := source.NewCountingSource[int, string](source.NewMapSource(numbers))
	registry := keylock.NewRegistry[int]()
	cache := readthroughcache.New[int, string](src, readthroughcache.WithRegistry[int, string](registry))

	for range 3 {
		v, found, err := cache.Get(t.Context(), 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found || v != "" {
			t.Errorf("expected absent, got (%q, %v)", v, found)
		}
	}
	if registry.Contains(42) {
		t.Error("absent key should not keep a lock")
	}
	if got := src.Count(42); got != 3 {
		t.Errorf("expected absent key to be looked up every time, got %d", got)
	}

	v, found, err := cache.Get(t.Context(), 2)
	if err != nil || !found || v != "Two" {
		t.Errorf("expected (Two, true, nil), got (%q, %v, %v)", v, found, err)
	}
	if !registry.Contains(2) {
		t.Error("loaded key should keep its lock")
	}
}

func TestCache_Get_ReloadAfterFailure(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("temporary failure")
	var calls atomic.Int32
	src := readthroughcache.DataSourceFunc[int, string](func(_ context.Context, key int) (string, bool, error) {
		switch calls.Add(1) {
		case 1:
			return "", false, sourceErr
		case 2:
			panic("unstable")
		default:
			return numbers[key], true, nil
		}
	})
	registry := keylock.NewRegistry[int]()
	cache := readthroughcache.New[int, string](src, readthroughcache.WithRegistry[int, string](registry))

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	if _, _, err := cache.Get(ctx, 4); !errors.Is(err, sourceErr) {
		t.Fatalf("expected source error, got %v", err)
	}
	if registry.Contains(4) {
		t.Error("failed load should unregister its lock")
	}

	var recovered *panics.ErrRecovered
	if _, _, err := cache.Get(ctx, 4); !errors.As(err, &recovered) {
		t.Fatalf("expected recovered panic, got %v", err)
	}
	if registry.Contains(4) {
		t.Error("panicked load should unregister its lock")
	}

	v, found, err := cache.Get(ctx, 4)
	if err != nil || !found || v != "Four" {
		t.Errorf("expected (Four, true, nil), got (%q, %v, %v)", v, found, err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 source calls, got %d", got)
	}
}

// waitingClock signals waiting the first time the cache reads the time, which a follower does
// right before it waits for the loader.
func waitingClock() (readthroughcache.Clock, <-chan struct{}) {
	var once sync.Once
	waiting := make(chan struct{})
	return readthroughcache.ClockFunc(func() time.Time {
		once.Do(func() { close(waiting) })
		return time.Now()
	}), waiting
}

func TestCache_Get_FollowerOfFailedLoad(t *testing.T) {
	t.Parallel()

	src := source.NewCountingSource[int, string](source.NewMapSource(numbers))
	registry := keylock.NewRegistry[int]()
	recorder := &diagnostics.MemoryRecorder{}
	clock, waiting := waitingClock()
	cache := readthroughcache.New[int, string](src,
		readthroughcache.WithRegistry[int, string](registry),
		readthroughcache.WithDiagnostics[int, string](recorder),
		readthroughcache.WithClock[int, string](clock),
	)

	// a loader that is still in progress
	l, won := registry.RegisterOrGet(1, keylock.NewLock())
	if !won {
		t.Fatal("expected to install the lock")
	}

	type result struct {
		value string
		found bool
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, found, err := cache.Get(diagnostics.WithCallerID(t.Context(), "follower"), 1)
		done <- result{v, found, err}
	}()

	<-waiting
	// the load fails
	registry.Unregister(1, l)
	l.Unlock()

	got := <-done
	if got.err != nil || got.found {
		t.Errorf("expected follower to see an absent key, got %+v", got)
	}
	if d, _ := recorder.Detail("follower"); !d.Is(diagnostics.SourceCache, diagnostics.LockRead) {
		t.Errorf("expected CACHE/READ, got %v", d)
	}
	if got := src.Total(); got != 0 {
		t.Errorf("follower should not call the source, got %d calls", got)
	}

	v, found, err := cache.Get(t.Context(), 1)
	if err != nil || !found || v != "One" {
		t.Errorf("expected (One, true, nil), got (%q, %v, %v)", v, found, err)
	}
	if got := src.Count(1); got != 1 {
		t.Errorf("expected the next caller to load, got %d calls", got)
	}
}

func TestCache_Get_FollowerCanceled(t *testing.T) {
	t.Parallel()

	registry := keylock.NewRegistry[int]()
	s := memstore.NewInMemoryStore[int, string]()
	clock, waiting := waitingClock()
	cache := readthroughcache.New[int, string](source.NewMapSource(numbers),
		readthroughcache.WithRegistry[int, string](registry),
		readthroughcache.WithStore[int, string](s),
		readthroughcache.WithClock[int, string](clock),
	)

	l, _ := registry.RegisterOrGet(5, keylock.NewLock())

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() {
		_, _, err := cache.Get(ctx, 5)
		errCh <- err
	}()

	<-waiting
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// the load completes after the follower gave up
	s.StoreIfAbsent(5, "Five")
	l.Unlock()

	v, found, err := cache.Get(t.Context(), 5)
	if err != nil || !found || v != "Five" {
		t.Errorf("expected (Five, true, nil), got (%q, %v, %v)", v, found, err)
	}
}

func TestCache_Get_LoadIsNotCanceled(t *testing.T) {
	t.Parallel()

	cache := readthroughcache.New[int, string](readthroughcache.DataSourceFunc[int, string](func(ctx context.Context, key int) (string, bool, error) {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		return numbers[key], true, nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	v, found, err := cache.Get(ctx, 2)
	if err != nil || !found || v != "Two" {
		t.Errorf("expected (Two, true, nil), got (%q, %v, %v)", v, found, err)
	}
}

func TestCache_WithCloner(t *testing.T) {
	t.Parallel()

	cache := readthroughcache.New[int, []int](
		readthroughcache.DataSourceFunc[int, []int](func(_ context.Context, key int) ([]int, bool, error) {
			return []int{key, key * 2}, true, nil
		}),
		readthroughcache.WithCloner[int](readthroughcache.ValueClonerFunc[[]int](func(v []int) []int {
			return append([]int(nil), v...)
		})),
	)

	v, _, err := cache.Get(t.Context(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v[0] = 100

	v, _, err = cache.Get(t.Context(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{2, 4}, v); diff != "" {
		t.Errorf("cached value was modified (-want +got):\n%s", diff)
	}
}

func TestCache_WithStore(t *testing.T) {
	t.Parallel()

	s := &store.SyncMapStore[int, string]{}
	s.StoreIfAbsent(9, "Nine")
	src := source.NewCountingSource[int, string](source.NewMapSource(numbers))
	cache := readthroughcache.New[int, string](src, readthroughcache.WithStore[int, string](s))

	if v, found, err := cache.Get(t.Context(), 9); err != nil || !found || v != "Nine" {
		t.Errorf("expected (Nine, true, nil), got (%q, %v, %v)", v, found, err)
	}
	if _, _, err := cache.Get(t.Context(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := s.Load(1); !ok || v != "One" {
		t.Errorf("expected loaded value in the store, got (%q, %v)", v, ok)
	}
	if got := src.Total(); got != 1 {
		t.Errorf("expected one source call, got %d", got)
	}
}

func TestCache_WithClock(t *testing.T) {
	t.Parallel()

	var now atomic.Int64
	clock := readthroughcache.ClockFunc(func() time.Time {
		return time.Unix(now.Add(int64(time.Second)), 0)
	})
	recorder := &diagnostics.MemoryRecorder{}
	cache := readthroughcache.New[int, string](source.NewMapSource(numbers),
		readthroughcache.WithClock[int, string](clock),
		readthroughcache.WithDiagnostics[int, string](recorder),
	)

	if _, _, err := cache.Get(t.Context(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, _ := recorder.Detail("")
	want := diagnostics.Detail{Key: 1, Source: diagnostics.SourceDataSource, LockMode: diagnostics.LockWrite, Elapsed: time.Second}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_WithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cache := readthroughcache.New[int, string](
		readthroughcache.DataSourceFunc[int, string](func(_ context.Context, key int) (string, bool, error) {
			if key == 0 {
				return "", false, errors.New("zero is invalid")
			}
			return numbers[key], true, nil
		}),
		readthroughcache.WithLogger[int, string](logger),
	)

	if _, _, err := cache.Get(t.Context(), 0); err == nil {
		t.Fatal("expected error")
	}
	if _, _, err := cache.Get(t.Context(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`level=WARN msg="failed to load from data source" key=0 error="zero is invalid"`,
		`level=DEBUG msg="loaded from data source" key=1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCache_GetMulti(t *testing.T) {
	t.Parallel()

	src := source.NewCountingSource[int, string](source.NewMapSource(numbers))
	cache := readthroughcache.New[int, string](src)

	entries, err := cache.GetMulti(t.Context(), []int{1, 9, 2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*readthroughcache.Entry[int, string]{
		{Key: 1, Value: "One"},
		nil,
		{Key: 2, Value: "Two"},
		{Key: 1, Value: "One"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if got := src.Count(1); got != 1 {
		t.Errorf("expected key 1 to be loaded once, got %d", got)
	}

	entries, err = cache.GetMulti(t.Context(), nil)
	if err != nil || len(entries) != 0 {
		t.Errorf("expected no entries, got (%v, %v)", entries, err)
	}
}

func TestCache_GetMulti_Error(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("source error")
	cache := readthroughcache.New[int, string](readthroughcache.DataSourceFunc[int, string](func(_ context.Context, key int) (string, bool, error) {
		if key == 3 {
			return "", false, sourceErr
		}
		return numbers[key], true, nil
	}))

	entries, err := cache.GetMulti(t.Context(), []int{1, 2, 3})
	if !errors.Is(err, sourceErr) {
		t.Errorf("expected source error, got %v", err)
	}
	if entries != nil {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := readthroughcache.New[int, string](source.NewMapSource(numbers))
	ctx := context.Background()
	b.RunParallel(func(pb *testing.PB) {
		var i int
		for pb.Next() {
			_, _, _ = cache.Get(ctx, i%6)
			i++
		}
	})
}

func TestCache_Get_NegativeZeroKey(t *testing.T) {
	t.Parallel()

	type point struct {
		X, Y float64
	}

	negZero := math.Copysign(0, -1)

	t.Run("float64", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := readthroughcache.New[float64, string](readthroughcache.DataSourceFunc[float64, string](func(_ context.Context, key float64) (string, bool, error) {
			calls.Add(1)
			if key == 0 {
				return "zero", true, nil
			}
			return "", false, nil
		}))

		for _, key := range []float64{negZero, 0, negZero} {
			v, found, err := cache.Get(t.Context(), key)
			if err != nil || !found || v != "zero" {
				t.Errorf("Get(%v) = (%q, %v, %v), want (zero, true, nil)", key, v, found, err)
			}
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("expected source to be called once, got %d", got)
		}
	})

	t.Run("struct", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := readthroughcache.New[point, string](readthroughcache.DataSourceFunc[point, string](func(_ context.Context, key point) (string, bool, error) {
			calls.Add(1)
			return fmt.Sprint(key.X + key.Y), true, nil
		}))

		for _, key := range []point{{negZero, 1}, {0, 1}} {
			v, found, err := cache.Get(t.Context(), key)
			if err != nil || !found || v != "1" {
				t.Errorf("Get(%v) = (%q, %v, %v), want (1, true, nil)", key, v, found, err)
			}
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("expected source to be called once, got %d", got)
		}
	})
}

func TestCache_Get_UintptrKey(t *testing.T) {
	t.Parallel()

	cache := readthroughcache.New[uintptr, string](readthroughcache.DataSourceFunc[uintptr, string](func(_ context.Context, key uintptr) (string, bool, error) {
		return fmt.Sprintf("%#x", key), true, nil
	}))

	v, found, err := cache.Get(t.Context(), 0xff)
	if err != nil || !found || v != "0xff" {
		t.Errorf("expected (0xff, true, nil), got (%q, %v, %v)", v, found, err)
	}
}

func TestCache_Get_RecordsWriteOnlyForValues(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("source error")
	recorder := &diagnostics.MemoryRecorder{}
	cache := readthroughcache.New[int, string](
		readthroughcache.DataSourceFunc[int, string](func(_ context.Context, key int) (string, bool, error) {
			switch key {
			case 1:
				return "", false, nil
			case 2:
				return "", false, sourceErr
			case 3:
				panic("boom")
			default:
				return numbers[key], true, nil
			}
		}),
		readthroughcache.WithDiagnostics[int, string](recorder),
	)

	for _, key := range []int{1, 2, 3} {
		ctx := diagnostics.WithCallerID(t.Context(), fmt.Sprint(key))
		if _, found, _ := cache.Get(ctx, key); found {
			t.Errorf("key %d: expected not found", key)
		}
	}
	if details := recorder.Details(); len(details) != 0 {
		t.Errorf("expected nothing recorded for loads without a value, got %v", details)
	}

	ctx := diagnostics.WithCallerID(t.Context(), "4")
	if _, found, err := cache.Get(ctx, 4); err != nil || !found {
		t.Fatalf("expected key 4 to be found, got (%v, %v)", found, err)
	}
	want := map[string]diagnostics.Detail{
		"4": {Key: 4, Source: diagnostics.SourceDataSource, LockMode: diagnostics.LockWrite},
	}
	if diff := cmp.Diff(want, recorder.Details(), cmpopts.IgnoreFields(diagnostics.Detail{}, "Elapsed")); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
}
