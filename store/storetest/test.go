// storetest package provides generic test cases for value store implementations.
package storetest

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/karupanerura/readthrough-cache/store"
)

// BenchmarkLoad benchmarks the Load method of the store after the keys are stored.
func BenchmarkLoad[K comparable, V any](b *testing.B, s store.Store[K, V], keys []K) {
	var zero V
	for _, key := range keys {
		s.StoreIfAbsent(key, zero)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := rand.IntN(len(keys))
		for pb.Next() {
			s.Load(keys[i%len(keys)])
			i++
		}
	})
}

// TestWriteOnce tests that a stored value is never overwritten.
func TestWriteOnce(t *testing.T, provider func() store.Store[uint8, int8]) {
	t.Run("WriteOnce", func(t *testing.T) {
		t.Parallel()

		s := provider()
		if v, ok := s.Load(1); ok {
			t.Fatalf("unexpected value before store: %d", v)
		}

		if actual, stored := s.StoreIfAbsent(1, 10); !stored || actual != 10 {
			t.Fatalf("first store must succeed: actual=%d stored=%v", actual, stored)
		}
		if actual, stored := s.StoreIfAbsent(1, 20); stored || actual != 10 {
			t.Fatalf("second store must keep the first value: actual=%d stored=%v", actual, stored)
		}
		if v, ok := s.Load(1); !ok || v != 10 {
			t.Fatalf("unexpected value: %d (found=%v)", v, ok)
		}

		// zero values are values too
		if actual, stored := s.StoreIfAbsent(2, 0); !stored || actual != 0 {
			t.Fatalf("zero value store must succeed: actual=%d stored=%v", actual, stored)
		}
		if v, ok := s.Load(2); !ok || v != 0 {
			t.Fatalf("unexpected value: %d (found=%v)", v, ok)
		}
	})
}

// TestConsistency tests concurrent stores and loads over distinct keys.
func TestConsistency(t *testing.T, provider func() store.Store[uint8, int8]) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		s := provider()
		type pair struct {
			Key   uint8
			Value int8
		}
		patterns := []pair{
			{0, 1},
			{1, 2},
			{2, 3},
			{3, 4},
			{4, 5},
			{251, 124},
			{252, 125},
			{253, 126},
			{254, 127},
			{255, -128},
		}
		rand.Shuffle(len(patterns), func(i, j int) {
			patterns[i], patterns[j] = patterns[j], patterns[i]
		})

		var eg errgroup.Group
		for _, pattern := range patterns {
			eg.Go(func() error {
				if v, ok := s.Load(pattern.Key); ok {
					return fmt.Errorf("unexpected exists value %d for key %d", v, pattern.Key)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		eg = errgroup.Group{}
		for _, pattern := range patterns {
			eg.Go(func() error {
				if _, stored := s.StoreIfAbsent(pattern.Key, pattern.Value); !stored {
					return fmt.Errorf("key %d was not stored", pattern.Key)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		eg = errgroup.Group{}
		got := make([]pair, len(patterns))
		for i, pattern := range patterns {
			eg.Go(func() error {
				v, ok := s.Load(pattern.Key)
				if !ok {
					return fmt.Errorf("key %d is missing", pattern.Key)
				}
				got[i] = pair{Key: pattern.Key, Value: v}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(patterns, got); diff != "" {
			t.Errorf("unexpected values (-want +got):\n%s", diff)
		}
	})
}

// TestStoreIfAbsentRace tests that exactly one of many concurrent writers wins per key,
// and every writer observes the winning value.
func TestStoreIfAbsentRace(t *testing.T, provider func() store.Store[uint8, int8]) {
	t.Run("StoreIfAbsentRace", func(t *testing.T) {
		t.Parallel()

		s := provider()

		const numWriters = 64
		var (
			eg      errgroup.Group
			winners atomic.Int32
		)
		actuals := make([]int8, numWriters)
		for i := range numWriters {
			eg.Go(func() error {
				actual, stored := s.StoreIfAbsent(7, int8(i))
				if stored {
					winners.Add(1)
				}
				actuals[i] = actual
				return nil
			})
		}
		_ = eg.Wait()

		if n := winners.Load(); n != 1 {
			t.Fatalf("expected exactly one winner, got %d", n)
		}
		want, _ := s.Load(7)
		for i, actual := range actuals {
			if actual != want {
				t.Errorf("writer %d observed %d (expected: %d)", i, actual, want)
			}
		}
	})
}
