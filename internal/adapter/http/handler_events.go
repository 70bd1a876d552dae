package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sentinel/sentinel/internal/infra/events"
)

// EventStream defines the broker behavior the events handler depends on
type EventStream interface {
	Subscribe() (*events.Subscriber, error)
	Unsubscribe(sub *events.Subscriber)
}

// EventsHandler streams audit activity as Server-Sent Events
type EventsHandler struct {
	stream EventStream
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(stream EventStream) *EventsHandler {
	return &EventsHandler{stream: stream}
}

// RegisterRoutes registers the event stream route
func (h *EventsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/events", h.Stream).Methods("GET")
}

// Stream holds the connection open and forwards every broker message
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sub, err := h.stream.Subscribe()
	if err != nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "events_unavailable", "Event stream unavailable")
		return
	}
	defer h.stream.Unsubscribe(sub)

	rc := http.NewResponseController(w)
	// the server write timeout would otherwise cut long-lived streams
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	connected, err := events.Frame(events.Event{
		Type: "connected",
		Data: map[string]string{"subscriber_id": sub.ID},
		Time: time.Now().Unix(),
	})
	if err != nil {
		return
	}
	if _, err := w.Write(connected); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case message, ok := <-sub.Messages:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
