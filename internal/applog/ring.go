package applog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RingSize is how many entries the ring keeps.
const RingSize = 50

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

type Entry struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"` // unix millis
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

type Listener func(Entry)

// Ring is an in-memory log of the most recent entries, newest first.
type Ring struct {
	mu        sync.Mutex
	entries   []Entry
	listeners map[int]Listener
	nextSub   int
	now       func() time.Time
}

func NewRing() *Ring {
	return &Ring{listeners: map[int]Listener{}, now: time.Now}
}

func (r *Ring) Add(level Level, msg string, details map[string]any) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: r.now().UnixMilli(),
		Level:     level,
		Message:   msg,
		Details:   details,
	}
	r.mu.Lock()
	r.entries = append([]Entry{e}, r.entries...)
	if len(r.entries) > RingSize {
		r.entries = r.entries[:RingSize]
	}
	ls := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		ls = append(ls, l)
	}
	r.mu.Unlock()

	for _, l := range ls {
		l(e)
	}
	return e
}

// Entries returns a copy, newest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Clear empties the ring and records that it did.
func (r *Ring) Clear() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
	r.Add(LevelInfo, "Logs cleared", nil)
}

// Subscribe registers l for every new entry and returns its cancel func.
func (r *Ring) Subscribe(l Listener) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = l
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}
