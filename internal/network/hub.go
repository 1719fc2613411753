package network

import (
	"sync"

	"deepstore-server/pkg/api"
)

const subscriberBuffer = 100

// Broadcaster раздает ответы и логи мира подключенным консолям.
// Одна консоль - один канал. Медленные консоли теряют сообщения,
// поток симуляции их не ждет.
type Broadcaster struct {
	mu sync.RWMutex
	// ID консоли -> личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register выдает консоли личный канал. Повторный вход с тем же ID
// вытесняет старую консоль: ее канал закрывается.
func (b *Broadcaster) Register(id string) <-chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, subscriberBuffer)
	b.subscribers[id] = ch
	return ch
}

// Unregister отписывает консоль, только если ch все еще ее текущий канал.
// Вытесненная консоль не может отписать того, кто пришел после нее.
func (b *Broadcaster) Unregister(id string, ch <-chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok := b.subscribers[id]
	if !ok || (<-chan api.ServerResponse)(cur) != ch {
		return
	}
	close(cur)
	delete(b.subscribers, id)
}

// SendTo кладет сообщение одной консоли. false - консоли нет или ее очередь полна.
func (b *Broadcaster) SendTo(id string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}

// Reply - как SendTo, но только если ch все еще текущий канал консоли.
// Ответ вытесненной консоли никуда не попадает.
func (b *Broadcaster) Reply(id string, ch <-chan api.ServerResponse, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cur, ok := b.subscribers[id]
	if !ok || (<-chan api.ServerResponse)(cur) != ch {
		return false
	}
	select {
	case cur <- msg:
		return true
	default:
		return false
	}
}

// Broadcast отправляет всем. Возвращает, скольким консолям сообщение не влезло.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	return dropped
}

func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
