package services

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Event is one change notification delivered to live subscribers.
type Event struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
}

// Topic names. One topic per observable document or collection.
func ProfileTopic(userID string) string { return "profile/" + userID }
func CircleTopic(userID string) string  { return "circle/" + userID }
func JournalTopic(userID string) string { return "journal/" + userID }
func AlertTopic(userID string) string   { return "alert/" + userID }

const eventBuffer = 16

// Subscription is a live listener on a single topic. Cancel is
// idempotent and guarantees no event is delivered afterwards.
type Subscription struct {
	topic  string
	ch     chan Event
	hub    *Hub
	cancel sync.Once
}

// Events returns the channel events are delivered on. It is closed by Cancel.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Cancel removes the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.cancel.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if subs, ok := s.hub.topics[s.topic]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.hub.topics, s.topic)
			}
		}
		close(s.ch)
	})
}

// Hub routes store-change events to live subscriptions. Services
// publish after successful writes; WebSocket sessions subscribe.
type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[*Subscription]struct{}
	sessions map[string]*Session
}

// NewHub creates a new subscription hub
func NewHub() *Hub {
	return &Hub{
		topics:   make(map[string]map[*Subscription]struct{}),
		sessions: make(map[string]*Session),
	}
}

// Subscribe opens a live subscription on a topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan Event, eventBuffer), hub: h}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Subscription]struct{})
	}
	h.topics[topic][sub] = struct{}{}
	return sub
}

// Publish delivers an event to every subscription on its topic.
// Delivery never blocks a writer: a subscriber that cannot keep up
// drops events rather than stalling the publishing request.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[ev.Topic] {
		select {
		case sub.ch <- ev:
		default:
			log.Warn().Str("topic", ev.Topic).Str("type", ev.Type).Msg("Dropping event for slow subscriber")
		}
	}
}

// OpenSession creates the live session for a user, replacing (and fully
// cancelling) any previous one. At most one session per user exists.
func (h *Hub) OpenSession(userID string) *Session {
	s := &Session{
		hub:    h,
		userID: userID,
		subs:   make(map[string]*Subscription),
		events: make(chan Event, eventBuffer),
	}

	h.mu.Lock()
	prev := h.sessions[userID]
	h.sessions[userID] = s
	h.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	log.Info().Str("user_id", userID).Msg("Live session opened")
	return s
}

// CloseSession ends the user's live session, if any. Used on sign-out.
func (h *Hub) CloseSession(userID string) {
	h.mu.Lock()
	s := h.sessions[userID]
	delete(h.sessions, userID)
	h.mu.Unlock()

	if s != nil {
		s.Close()
		log.Info().Str("user_id", userID).Msg("Live session closed")
	}
}

// SessionActive reports whether the user has a live session (is online).
func (h *Hub) SessionActive(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.sessions[userID]
	return ok
}

// Session is the set of live subscriptions owned by one signed-in
// connection. Closing the session cancels every subscription it opened;
// no callback fires after Close returns.
type Session struct {
	hub    *Hub
	userID string
	events chan Event

	mu     sync.Mutex
	subs   map[string]*Subscription
	wg     sync.WaitGroup
	closed bool
}

// UserID returns the id of the signed-in user owning the session.
func (s *Session) UserID() string { return s.userID }

// Events returns the merged stream of all the session's subscriptions.
// The channel is closed once Close has cancelled every subscription.
func (s *Session) Events() <-chan Event { return s.events }

// Subscribe opens a listener on topic scoped to this session. A second
// subscribe on the same topic cancels the first, so the session holds
// at most one listener per topic.
func (s *Session) Subscribe(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if prev, ok := s.subs[topic]; ok {
		prev.Cancel()
	}
	sub := s.hub.Subscribe(topic)
	s.subs[topic] = sub

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for ev := range sub.Events() {
			select {
			case s.events <- ev:
			default:
				log.Warn().Str("user_id", s.userID).Str("topic", topic).Msg("Dropping event for slow session")
			}
		}
	}()
}

// Unsubscribe cancels the session's listener on topic, if present.
func (s *Session) Unsubscribe(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[topic]; ok {
		sub.Cancel()
		delete(s.subs, topic)
	}
}

// Close cancels every subscription owned by the session and closes the
// event stream. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
	s.mu.Unlock()

	s.wg.Wait()
	close(s.events)

	s.hub.mu.Lock()
	if s.hub.sessions[s.userID] == s {
		delete(s.hub.sessions, s.userID)
	}
	s.hub.mu.Unlock()
}
