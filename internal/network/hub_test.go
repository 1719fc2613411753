package network

import (
	"testing"

	"deepstore-server/pkg/api"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster_RegisterSend(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("c1")

	assert.True(t, b.HasSubscriber("c1"))
	assert.True(t, b.SendTo("c1", api.ServerResponse{Type: "LOG"}))
	assert.False(t, b.SendTo("nobody", api.ServerResponse{}))

	msg := <-ch
	assert.Equal(t, "LOG", msg.Type)
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("c1")
	cur := b.Register("c1")

	_, open := <-old
	assert.False(t, open)
	assert.Equal(t, 1, b.SubscriberCount())

	// Старая консоль уходит, новая остается подписанной
	b.Unregister("c1", old)
	assert.True(t, b.HasSubscriber("c1"))

	b.Unregister("c1", cur)
	assert.False(t, b.HasSubscriber("c1"))
	_, open = <-cur
	assert.False(t, open)
}

func TestBroadcaster_BroadcastSkipsFull(t *testing.T) {
	b := NewBroadcaster()
	slow := b.Register("slow")
	fast := b.Register("fast")

	for i := 0; i < subscriberBuffer; i++ {
		assert.True(t, b.SendTo("slow", api.ServerResponse{}))
	}
	assert.False(t, b.SendTo("slow", api.ServerResponse{}))

	dropped := b.Broadcast(api.ServerResponse{Type: "LOG", Tick: 7})
	assert.Equal(t, 1, dropped)

	msg := <-fast
	assert.Equal(t, int64(7), msg.Tick)
	assert.Len(t, slow, subscriberBuffer)

	b.Unregister("slow", slow)
	b.Unregister("fast", fast)
	assert.Zero(t, b.SubscriberCount())
}

func TestBroadcaster_ReplyOnlyToCurrent(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("c1")
	cur := b.Register("c1")

	assert.False(t, b.Reply("c1", old, api.ServerResponse{Type: "RESULT"}))
	assert.Empty(t, cur)

	assert.True(t, b.Reply("c1", cur, api.ServerResponse{Type: "RESULT"}))
	msg := <-cur
	assert.Equal(t, "RESULT", msg.Type)

	assert.False(t, b.Reply("nobody", cur, api.ServerResponse{}))
	b.Unregister("c1", cur)
}
