// Package notify keeps short-lived, auto-dismissing notifications per
// session.
package notify

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type entry struct {
	Notification
	timer *time.Timer
}

// Center holds the visible notifications of every owner (a session token).
// Each notification expires after the configured duration unless dismissed
// first; dismissal stops its timer.
type Center struct {
	mu       sync.Mutex
	duration time.Duration
	queues   map[string][]*entry
}

func NewCenter(duration time.Duration) *Center {
	return &Center{
		duration: duration,
		queues:   map[string][]*entry{},
	}
}

// Push adds a notification for owner and schedules its removal.
func (c *Center) Push(owner, message string, typ Type) Notification {
	n := Notification{
		ID:        ulid.Make().String(),
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now(),
	}
	e := &entry{Notification: n}

	c.mu.Lock()
	defer c.mu.Unlock()
	e.timer = time.AfterFunc(c.duration, func() { c.remove(owner, n.ID) })
	c.queues[owner] = append(c.queues[owner], e)
	return n
}

func (c *Center) Success(owner, message string) Notification {
	return c.Push(owner, message, Success)
}

func (c *Center) Error(owner, message string) Notification {
	return c.Push(owner, message, Error)
}

// List returns the live notifications of owner, oldest first.
func (c *Center) List(owner string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue := c.queues[owner]
	out := make([]Notification, 0, len(queue))
	for _, e := range queue {
		out = append(out, e.Notification)
	}
	return out
}

// Dismiss removes a notification before it expires.
func (c *Center) Dismiss(owner, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.take(owner, id)
	if e == nil {
		return false
	}
	e.timer.Stop()
	return true
}

func (c *Center) remove(owner, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.take(owner, id)
}

// take unlinks an entry; callers hold mu.
func (c *Center) take(owner, id string) *entry {
	queue := c.queues[owner]
	for i, e := range queue {
		if e.ID != id {
			continue
		}
		queue = append(queue[:i], queue[i+1:]...)
		if len(queue) == 0 {
			delete(c.queues, owner)
		} else {
			c.queues[owner] = queue
		}
		return e
	}
	return nil
}

// Drop forgets every notification of owner, e.g. on sign-out.
func (c *Center) Drop(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.queues[owner] {
		e.timer.Stop()
	}
	delete(c.queues, owner)
}

// Close stops all pending timers.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for owner, queue := range c.queues {
		for _, e := range queue {
			e.timer.Stop()
		}
		delete(c.queues, owner)
	}
}
