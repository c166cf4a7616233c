package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChannel_AnnounceReplaces(t *testing.T) {
	c := NewChannel(time.Hour)

	c.Success("first")
	c.Error("second")

	msg := c.Current()
	require.NotNil(t, msg)
	require.Equal(t, "second", msg.Text)
	require.Equal(t, KindError, msg.Kind)
}

func TestChannel_MessageExpires(t *testing.T) {
	c := NewChannel(20 * time.Millisecond)

	c.Success("short-lived")
	require.NotNil(t, c.Current())

	require.Eventually(t, func() bool { return c.Current() == nil },
		time.Second, 5*time.Millisecond)
}

func TestChannel_AnnounceRestartsExpiry(t *testing.T) {
	c := NewChannel(60 * time.Millisecond)

	c.Success("first")
	time.Sleep(40 * time.Millisecond)
	c.Success("second")

	// The first message's timer would have fired by now; the second must
	// survive it.
	time.Sleep(40 * time.Millisecond)
	msg := c.Current()
	require.NotNil(t, msg)
	require.Equal(t, "second", msg.Text)

	require.Eventually(t, func() bool { return c.Current() == nil },
		time.Second, 5*time.Millisecond)
}

func TestChannel_Dismiss(t *testing.T) {
	c := NewChannel(time.Hour)

	c.Error("oops")
	c.Dismiss()
	require.Nil(t, c.Current())

	// Dismissing an empty channel is a no-op.
	c.Dismiss()
}

func TestChannel_OnChangeObservesLifecycle(t *testing.T) {
	c := NewChannel(time.Hour)

	var events []*Message
	c.OnChange(func(m *Message) { events = append(events, m) })

	c.Success("hello")
	c.Dismiss()

	require.Len(t, events, 2)
	require.Equal(t, "hello", events[0].Text)
	require.Nil(t, events[1])
}
