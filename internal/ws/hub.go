package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types pushed to session watchers
const (
	EventPartyJoined = "session.party_joined"
	EventComputing   = "session.computing"
	EventVotingOpen  = "session.voting_open"
	EventVoteCast    = "session.vote_cast"
	EventCompleted   = "session.completed"
)

// Event is one session lifecycle notification
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId"`
	Status    string    `json:"status,omitempty"`
	Voter     string    `json:"voter,omitempty"`
	WinnerID  string    `json:"winnerId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans session events out to the watchers of each session. Both
// parties keep a socket open on their session and see joins, pipeline
// progress, and votes as they happen.
type Hub struct {
	clients    map[string]map[*Client]bool // session ID -> watchers
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations and broadcasts. Call it in its own
// goroutine before accepting connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.sessionID] == nil {
				h.clients[client.sessionID] = make(map[*Client]bool)
			}
			h.clients[client.sessionID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if watchers, ok := h.clients[client.sessionID]; ok {
				if _, ok := watchers[client]; ok {
					delete(watchers, client)
					close(client.send)
					if len(watchers) == 0 {
						delete(h.clients, client.sessionID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			payload := marshalEvent(event)

			h.mu.Lock()
			for client := range h.clients[event.SessionID] {
				select {
				case client.send <- payload:
				default:
					// Watcher is not draining; drop it
					close(client.send)
					delete(h.clients[event.SessionID], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for the session's watchers. Safe to call from
// any goroutine; never blocks the caller on slow watchers.
func (h *Hub) Publish(event *Event) {
	event.Timestamp = time.Now()

	select {
	case h.broadcast <- event:
	default:
		log.Printf("event queue full, dropping %s for session %s", event.Type, event.SessionID)
	}
}

func marshalEvent(event *Event) []byte {
	b, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal event: %v", err)
		return []byte("{}")
	}
	return b
}
