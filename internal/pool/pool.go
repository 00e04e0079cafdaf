// Package pool provides typed slice pools with rent and return discipline.
package pool

import (
	"reflect"
	"sync"
)

// Slice is a pool of []T backed by sync.Pool.
type Slice[T any] struct {
	p sync.Pool
}

// Get returns a zeroed slice of length n. Its capacity may be larger.
func (s *Slice[T]) Get(n int) []T {
	if v, ok := s.p.Get().(*[]T); ok && cap(*v) >= n {
		b := (*v)[:n]
		clear(b)
		return b
	}
	return make([]T, n)
}

// Put returns b to the pool. b must not be used afterwards.
func (s *Slice[T]) Put(b []T) {
	if cap(b) == 0 {
		return
	}
	b = b[:0]
	s.p.Put(&b)
}

var pools sync.Map // reflect.Type -> *Slice[T]

// For returns the process wide pool for element type T.
func For[T any]() *Slice[T] {
	key := reflect.TypeFor[T]()
	if v, ok := pools.Load(key); ok {
		return v.(*Slice[T])
	}
	v, _ := pools.LoadOrStore(key, new(Slice[T]))
	return v.(*Slice[T])
}
