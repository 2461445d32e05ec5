package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// Message is one SSE frame.
type Message struct {
	Type domain.EventType
	Data string
}

// StreamManager fans animation events out to every connected SSE client.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- Message]struct{}
	buffer      int
	logger      *slog.Logger
}

// NewStreamManager creates a manager whose clients buffer up to buffer messages.
func NewStreamManager(buffer int, logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if buffer <= 0 {
		buffer = 256
	}
	return &StreamManager{
		subscribers: make(map[chan<- Message]struct{}),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe registers a client. The returned func unregisters it and closes the channel.
func (sm *StreamManager) Subscribe() (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, sm.buffer)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Count returns the number of connected clients.
func (sm *StreamManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast sends msg to every client, dropping it for clients whose buffer is full.
func (sm *StreamManager) Broadcast(msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "type", msg.Type)
		}
	}
}

// Publish encodes e as JSON and broadcasts it. Use it as the sink of an event.Adapter.
func (sm *StreamManager) Publish(e domain.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		sm.logger.Error("SSE: Failed to encode event", "type", e.Type, "error", err)
		return
	}
	sm.Broadcast(Message{Type: e.Type, Data: string(data)})
}
