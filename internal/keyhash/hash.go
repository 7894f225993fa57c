// Package keyhash builds hash functions used to spread keys over store buckets.
package keyhash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"io"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

// For returns a hash function for keys of type K.
// The returned values are non-negative.
//
// Keys equal under == always get the same hash, including -0.0 and +0.0.
// Keys whose underlying kind is an integer, float, bool or string are hashed by their binary
// representation, so named types (e.g. `type UserID int64`) are supported as well.
// Any other comparable type is hashed by walking its value with reflection, which is slower.
func For[K comparable]() func(K) int {
	var zero K
	if any(zero) == nil {
		// K is an interface type, so the dynamic type is unknown until call time.
		return hashReflected[K]
	}

	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(k K) int {
			return hashUint64(uint64(reflect.ValueOf(k).Int()))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(k K) int {
			return hashUint64(reflect.ValueOf(k).Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(k K) int {
			return hashUint64(floatBits(reflect.ValueOf(k).Float()))
		}
	case reflect.Bool:
		return func(k K) int {
			if reflect.ValueOf(k).Bool() {
				return 1
			}
			return 0
		}
	case reflect.String:
		return func(k K) int {
			return hashString(reflect.ValueOf(k).String())
		}
	default:
		return hashReflected[K]
	}
}

var hasherPool = sync.Pool{
	New: func() any {
		return fnv.New64a()
	},
}

func sum(write func(h hash.Hash64)) int {
	h := hasherPool.Get().(hash.Hash64)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	write(h)
	return int(h.Sum64() & math.MaxInt)
}

func hashUint64(v uint64) int {
	return sum(func(h hash.Hash64) {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		_, _ = h.Write(b[:])
	})
}

func hashString(s string) int {
	return sum(func(h hash.Hash64) {
		_, _ = h.Write([]byte(s))
	})
}

// floatBits returns the bits of f with negative zero folded into positive zero.
func floatBits(f float64) uint64 {
	if f == 0 {
		f = 0
	}
	return math.Float64bits(f)
}

func hashReflected[K comparable](k K) int {
	return sum(func(h hash.Hash64) {
		v := reflect.ValueOf(k)
		if !v.IsValid() {
			return
		}
		_, _ = io.WriteString(h, v.Type().String())
		writeValue(h, v)
	})
}

// writeValue writes v so that values equal under == write the same bytes.
func writeValue(h hash.Hash64, v reflect.Value) {
	var b [8]byte
	writeUint64 := func(u uint64) {
		binary.BigEndian.PutUint64(b[:], u)
		_, _ = h.Write(b[:])
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint64(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		writeUint64(floatBits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeUint64(floatBits(real(c)))
		writeUint64(floatBits(imag(c)))
	case reflect.Bool:
		if v.Bool() {
			writeUint64(1)
		} else {
			writeUint64(0)
		}
	case reflect.String:
		s := v.String()
		writeUint64(uint64(len(s)))
		_, _ = io.WriteString(h, s)
	case reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		writeUint64(uint64(v.Pointer()))
	case reflect.Array:
		for i := range v.Len() {
			writeValue(h, v.Index(i))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			writeValue(h, v.Field(i))
		}
	case reflect.Interface:
		if v.IsNil() {
			writeUint64(0)
			return
		}
		e := v.Elem()
		_, _ = io.WriteString(h, e.Type().String())
		writeValue(h, e)
	default:
		// not comparable, so it cannot be a key
		_, _ = fmt.Fprintf(h, "%v", v)
	}
}
