// Package notify holds the single short-lived status message surfaced
// after a mutation. One message is live at a time; a new Announce replaces
// the old one and restarts the expiry, with no queueing.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultTTL matches the dashboard's five-second toast lifetime.
const DefaultTTL = 5 * time.Second

type Message struct {
	Text string
	Kind Kind
}

// Channel is the shared notification slot. The zero value is not usable;
// construct with NewChannel.
type Channel struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  *Message
	timer    *time.Timer
	seq      uint64
	onChange []func(*Message)
}

func NewChannel(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{ttl: ttl}
}

// OnChange registers an observer invoked with every new message and with
// nil when the message expires or is dismissed.
func (c *Channel) OnChange(fn func(*Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Announce replaces the live message and arms a fresh expiry timer.
func (c *Channel) Announce(text string, kind Kind) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	msg := &Message{Text: text, Kind: kind}
	c.current = msg
	// The sequence guard keeps a stale timer from clearing a newer message.
	c.timer = time.AfterFunc(c.ttl, func() { c.expire(seq) })
	callbacks := c.callbacksLocked()
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(msg)
	}
}

// Success announces a success-kind message.
func (c *Channel) Success(text string) { c.Announce(text, KindSuccess) }

// Error announces an error-kind message.
func (c *Channel) Error(text string) { c.Announce(text, KindError) }

// Dismiss clears the live message immediately and cancels its expiry.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	cleared := c.current != nil
	c.current = nil
	callbacks := c.callbacksLocked()
	c.mu.Unlock()

	if cleared {
		for _, fn := range callbacks {
			fn(nil)
		}
	}
}

// Current returns the live message, or nil when none is pending.
func (c *Channel) Current() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Channel) expire(seq uint64) {
	c.mu.Lock()
	if c.seq != seq || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.timer = nil
	callbacks := c.callbacksLocked()
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(nil)
	}
}

func (c *Channel) callbacksLocked() []func(*Message) {
	callbacks := make([]func(*Message), len(c.onChange))
	copy(callbacks, c.onChange)
	return callbacks
}
