package core

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dkeye/roomkit/pkg/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session owns the set of connections of one live session. It is the only
// factory for Connection values and the only caller of their mutators.
// All operations are synchronous; reads may run concurrently with the
// authorized mutations below.
type Session struct {
	sessionID string
	source    SnapshotSource

	mu          sync.RWMutex
	createdAt   int64
	connections map[string]*connection
}

func NewSession(sessionID string, source SnapshotSource) *Session {
	return &Session{
		sessionID:   sessionID,
		source:      source,
		connections: make(map[string]*connection),
	}
}

func (s *Session) SessionID() string { return s.sessionID }

func (s *Session) CreatedAt() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt
}

// Fetch pulls a fresh snapshot from the source and rebuilds the whole
// connection index from it. The rebuild is all-or-nothing: if any connection
// in the snapshot is malformed, the previous state is kept and the error is
// returned to the caller.
func (s *Session) Fetch(ctx context.Context) error {
	fetchID := uuid.NewString()

	data, err := s.source.FetchSession(ctx, s.sessionID)
	if err != nil {
		return fmt.Errorf("fetch session %s: %w", s.sessionID, err)
	}

	snap, err := decodeSessionSnapshot(data)
	if err != nil {
		return err
	}
	switch {
	case snap.SessionID == nil:
		return malformedf("session: sessionId missing")
	case snap.CreatedAt == nil:
		return malformedf("session %s: createdAt missing", *snap.SessionID)
	case snap.Connections == nil:
		return malformedf("session %s: connections missing", *snap.SessionID)
	}
	if *snap.SessionID != s.sessionID {
		return malformedf("session %s: snapshot is for session %s", s.sessionID, *snap.SessionID)
	}

	next := make(map[string]*connection, len(*snap.Connections))
	for _, cs := range *snap.Connections {
		conn, err := newConnection(cs)
		if err != nil {
			return err
		}
		next[conn.connectionID] = conn
	}

	s.mu.Lock()
	s.createdAt = *snap.CreatedAt
	s.connections = next
	s.mu.Unlock()

	log.Info().Str("module", "core.session").Str("session", s.sessionID).
		Str("fetch_id", fetchID).Int("connections", len(next)).
		Msg("session state rebuilt")
	return nil
}

func (s *Session) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// ActiveConnections returns a snapshot of the current participants.
func (s *Session) ActiveConnections() []Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Connection, 0, len(s.connections))
	for _, c := range s.connections {
		out = append(out, c)
	}
	return out
}

func (s *Session) GetConnection(connectionID string) (Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.connections[connectionID]
	if !ok {
		return nil, false
	}
	return c, true
}

// UpdateConnection applies a permission update to one participant: the role
// and record flag from opts are taken over, everything else (credential,
// binding, server data) is preserved.
func (s *Session) UpdateConnection(connectionID string, opts domain.TokenOptions) (Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.connections[connectionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConnectionNotFound, connectionID)
	}
	c.overrideTokenOptions(opts)
	log.Info().Str("module", "core.session").Str("session", s.sessionID).
		Str("connection", connectionID).Str("role", string(opts.Role)).Bool("record", opts.Record).
		Msg("connection updated")
	return c, nil
}

// ForceUnpublish stops one published stream: the publisher is removed from
// its owning connection and the stream id is stripped from every other
// connection's subscriber list.
func (s *Session) ForceUnpublish(streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owner *connection
	for _, c := range s.connections {
		if c.hasPublisher(streamID) {
			owner = c
			break
		}
	}
	if owner == nil {
		return fmt.Errorf("%w: %s", ErrStreamNotFound, streamID)
	}
	owner.removePublisher(streamID)
	s.stripSubscriptions(streamID)

	log.Info().Str("module", "core.session").Str("session", s.sessionID).
		Str("connection", owner.connectionID).Str("stream", streamID).
		Msg("stream force-unpublished")
	return nil
}

// ForceDisconnect evicts a participant: its connection leaves the index and
// every stream it published is stripped from the remaining subscriber lists.
func (s *Session) ForceDisconnect(connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.connections[connectionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrConnectionNotFound, connectionID)
	}
	delete(s.connections, connectionID)
	for _, streamID := range c.publisherIDs() {
		s.stripSubscriptions(streamID)
	}

	log.Info().Str("module", "core.session").Str("session", s.sessionID).
		Str("connection", connectionID).Int("remaining", len(s.connections)).
		Msg("connection force-disconnected")
	return nil
}

// ResolveSubscriber maps a subscribed stream id back to the live publisher it
// refers to. Subscriber lists are not re-validated on unpublish, so callers
// that care about staleness resolve explicitly and handle ErrStaleSubscriber.
func (s *Session) ResolveSubscriber(streamID string) (domain.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.connections {
		if v, ok := c.publishers.Load(streamID); ok {
			return v.(domain.Publisher), nil
		}
	}
	return domain.Publisher{}, fmt.Errorf("%w: %s", ErrStaleSubscriber, streamID)
}

// caller must hold s.mu.
func (s *Session) stripSubscriptions(streamID string) {
	for _, c := range s.connections {
		subs := c.Subscribers()
		if !slices.Contains(subs, streamID) {
			continue
		}
		next := make([]string, 0, len(subs)-1)
		for _, id := range subs {
			if id != streamID {
				next = append(next, id)
			}
		}
		c.setSubscribers(next)
	}
}
