// Package events fans audit activity out to Server-Sent Events subscribers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentinel/sentinel/internal/infra/logger"
)

var (
	ErrBrokerStopped  = errors.New("event broker stopped")
	ErrBroadcastFull  = errors.New("broadcast channel is full")
	ErrBrokerNotReady = errors.New("event broker not started")
)

// Event is the JSON payload of one SSE message
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
	Time int64       `json:"time"`
}

// Subscriber receives framed SSE messages on Messages until it is removed
type Subscriber struct {
	ID       string
	Messages chan []byte
}

// Broker owns the subscriber set. All mutation happens on the Start goroutine.
type Broker struct {
	clients    map[string]*Subscriber
	mu         sync.RWMutex
	register   chan *Subscriber
	unregister chan *Subscriber
	broadcast  chan []byte
	done       chan struct{}
	started    chan struct{}
	startOnce  sync.Once

	bufferSize int
	heartbeat  time.Duration
	logger     logger.Logger
	now        func() time.Time
}

// NewBroker creates a broker. Each subscriber buffers bufferSize messages; a
// subscriber that falls further behind is dropped.
func NewBroker(bufferSize int, heartbeat time.Duration, log logger.Logger) *Broker {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}

	return &Broker{
		clients:    make(map[string]*Subscriber),
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		started:    make(chan struct{}),
		bufferSize: bufferSize,
		heartbeat:  heartbeat,
		logger:     log,
		now:        time.Now,
	}
}

// Start runs the broker loop until ctx is cancelled
func (b *Broker) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		close(b.started)
		go b.run(ctx)
	})
}

func (b *Broker) run(ctx context.Context) {
	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for id, client := range b.clients {
				delete(b.clients, id)
				close(client.Messages)
			}
			b.mu.Unlock()
			close(b.done)
			return

		case client := <-b.register:
			b.mu.Lock()
			b.clients[client.ID] = client
			b.mu.Unlock()

		case client := <-b.unregister:
			b.remove(client.ID)

		case message := <-b.broadcast:
			b.fanOut(ctx, message)

		case <-ticker.C:
			b.fanOut(ctx, []byte(": heartbeat\n\n"))
		}
	}
}

func (b *Broker) fanOut(ctx context.Context, message []byte) {
	var slow []string

	b.mu.RLock()
	for id, client := range b.clients {
		select {
		case client.Messages <- message:
		default:
			slow = append(slow, id)
		}
	}
	b.mu.RUnlock()

	for _, id := range slow {
		b.logger.Warn(ctx, "Dropping slow event subscriber", map[string]interface{}{"subscriber_id": id})
		b.remove(id)
	}
}

func (b *Broker) remove(id string) {
	b.mu.Lock()
	if client, ok := b.clients[id]; ok {
		delete(b.clients, id)
		close(client.Messages)
	}
	b.mu.Unlock()
}

// Subscribe registers a new subscriber
func (b *Broker) Subscribe() (*Subscriber, error) {
	select {
	case <-b.started:
	default:
		return nil, ErrBrokerNotReady
	}

	client := &Subscriber{
		ID:       uuid.NewString(),
		Messages: make(chan []byte, b.bufferSize),
	}

	select {
	case b.register <- client:
		return client, nil
	case <-b.done:
		return nil, ErrBrokerStopped
	}
}

// Unsubscribe removes client. It is safe to call after the client was dropped.
func (b *Broker) Unsubscribe(client *Subscriber) {
	select {
	case b.unregister <- client:
	case <-b.done:
	}
}

// Publish frames data as an SSE event of eventType and queues it for every subscriber
func (b *Broker) Publish(eventType string, data interface{}) error {
	message, err := Frame(Event{Type: eventType, Data: data, Time: b.now().Unix()})
	if err != nil {
		return err
	}

	select {
	case <-b.done:
		return ErrBrokerStopped
	default:
	}

	select {
	case b.broadcast <- message:
		return nil
	default:
		return ErrBroadcastFull
	}
}

// ClientCount returns the number of connected subscribers
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Frame renders event in the text/event-stream wire format
func Frame(event Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload)), nil
}
