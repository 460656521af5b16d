package gwas

import "sync/atomic"

// SharedViewState is a lock-free single slot holding the current View.
//
// The render loop calls Load once per frame; input handlers call Update (or
// Load and Store) from their own goroutines. Every Store publishes a fresh
// copy, so a reader never observes a Center from one store and a Scale from
// another.
//
// Concurrent writers are not serialized: two overlapping Updates both read
// the same old View and the later Store wins. Dropping one of two
// simultaneous key presses is acceptable for interactive input.
type SharedViewState struct {
	v atomic.Pointer[View]
}

// NewSharedViewState returns a cell holding v.
func NewSharedViewState(v View) *SharedViewState {
	s := &SharedViewState{}
	s.Store(v)
	return s
}

// Load returns a snapshot of the current view. A zero SharedViewState holds
// DefaultView.
func (s *SharedViewState) Load() View {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return DefaultView()
}

// Store replaces the current view. Scale is clamped to MinScale.
func (s *SharedViewState) Store(v View) {
	v = v.Clamped()
	s.v.Store(&v)
}

// Update applies fn to the current view and stores the result, returning
// it. The load and store are separate atomic steps; see the type comment.
func (s *SharedViewState) Update(fn func(View) View) View {
	v := fn(s.Load())
	s.Store(v)
	return v.Clamped()
}

// atomicValue is a single-slot cell for small value types shared between the
// input and render goroutines.
type atomicValue[T any] struct {
	p atomic.Pointer[T]
}

func (a *atomicValue[T]) Load() (T, bool) {
	if p := a.p.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

func (a *atomicValue[T]) Store(v T) {
	a.p.Store(&v)
}
