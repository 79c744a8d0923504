package overlapd

import "sync/atomic"

// An Env issues identities for the shapes created within one geometry
// context. Shapes derived during queries (edges, planes, intersection
// results) draw their ids from the same Env as the shape that produced
// them, so ids are unique within a context but not across contexts.
type Env struct {
	counter int64
}

func NewEnv() *Env {
	return &Env{}
}

func (e *Env) nextID() int64 {
	return atomic.AddInt64(&e.counter, 1)
}
