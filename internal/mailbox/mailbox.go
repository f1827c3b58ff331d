// Package mailbox queues outbound messages for identities other than the
// caller of the current action, such as the restaurant operator. Recipients
// collect their messages with Drain.
package mailbox

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the per-recipient queue size used when none is given
const DefaultCapacity = 100

var (
	// ErrMailboxFull is returned when the recipient has too many undelivered messages
	ErrMailboxFull = errors.New("mailbox full")
	// ErrBlocked is returned when the recipient blocked the bot
	ErrBlocked = errors.New("recipient blocked the bot")
)

// Message is a queued text message
type Message struct {
	ID        string    `json:"id"`
	To        int64     `json:"to"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Mailbox holds bounded per-recipient queues
type Mailbox struct {
	mu       sync.Mutex
	capacity int
	queues   map[int64][]Message
	blocked  map[int64]bool
}

// New creates a mailbox. capacity <= 0 selects DefaultCapacity.
func New(capacity int) *Mailbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Mailbox{
		capacity: capacity,
		queues:   make(map[int64][]Message),
		blocked:  make(map[int64]bool),
	}
}

// Send queues text for the recipient
func (m *Mailbox) Send(ctx context.Context, to int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blocked[to] {
		return ErrBlocked
	}
	if len(m.queues[to]) >= m.capacity {
		return ErrMailboxFull
	}

	m.queues[to] = append(m.queues[to], Message{
		ID:        uuid.NewString(),
		To:        to,
		Text:      text,
		CreatedAt: time.Now(),
	})
	return nil
}

// Drain returns and removes all queued messages for the recipient, oldest first
func (m *Mailbox) Drain(to int64) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.queues[to]
	delete(m.queues, to)
	if msgs == nil {
		return []Message{}
	}
	return msgs
}

// Pending returns the number of queued messages for the recipient
func (m *Mailbox) Pending(to int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queues[to])
}

// SetBlocked marks whether the recipient refuses messages. Blocking drops
// anything already queued.
func (m *Mailbox) SetBlocked(to int64, blocked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if blocked {
		m.blocked[to] = true
		delete(m.queues, to)
		return
	}
	delete(m.blocked, to)
}
