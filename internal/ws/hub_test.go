package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type HubTestSuite struct {
	suite.Suite
	hub *Hub
}

func (s *HubTestSuite) SetupTest() {
	s.hub = NewHub()
	go s.hub.Run()
}

func TestHubTestSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}

func (s *HubTestSuite) watch(sessionID string) *Client {
	client := &Client{
		hub:       s.hub,
		send:      make(chan []byte, 16),
		sessionID: sessionID,
	}
	s.hub.register <- client
	return client
}

func (s *HubTestSuite) receive(client *Client) *Event {
	select {
	case payload := <-client.send:
		var event Event
		s.Require().NoError(json.Unmarshal(payload, &event))
		return &event
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for event")
		return nil
	}
}

func (s *HubTestSuite) TestPublishReachesSessionWatchers() {
	watcherA := s.watch("sess-1")
	watcherB := s.watch("sess-1")

	s.hub.Publish(&Event{
		Type:      EventVotingOpen,
		SessionID: "sess-1",
		Status:    "voting",
	})

	for _, watcher := range []*Client{watcherA, watcherB} {
		event := s.receive(watcher)
		s.Equal(EventVotingOpen, event.Type)
		s.Equal("sess-1", event.SessionID)
		s.Equal("voting", event.Status)
		s.False(event.Timestamp.IsZero())
	}
}

func (s *HubTestSuite) TestSessionsAreIsolated() {
	watcher := s.watch("sess-1")
	other := s.watch("sess-2")

	s.hub.Publish(&Event{Type: EventPartyJoined, SessionID: "sess-1"})

	s.receive(watcher)

	select {
	case <-other.send:
		s.FailNow("event leaked to another session's watcher")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *HubTestSuite) TestUnregisterClosesSend() {
	watcher := s.watch("sess-1")

	s.hub.unregister <- watcher

	select {
	case _, open := <-watcher.send:
		s.False(open)
	case <-time.After(time.Second):
		s.FailNow("send channel was not closed")
	}
}
