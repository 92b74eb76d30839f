package core

import (
	"slices"
	"sync"

	"github.com/dkeye/roomkit/pkg/domain"
)

// Connection is the read-only view of one participant's live membership in a
// session. Values of this type are obtained exclusively from a Session; the
// mutating surface stays package-private so that only the owning Session can
// touch subscriber or token state.
type Connection interface {
	// ConnectionID identifies the participant within its session. Pass it to
	// Session.ForceDisconnect or Session.UpdateConnection.
	ConnectionID() string
	// CreatedAt is when the connection was established, in UTC milliseconds.
	CreatedAt() int64
	// Location is the geo location of the participant ("unknown" when the
	// server could not locate it).
	Location() string
	// Platform describes what the participant used to connect.
	Platform() string
	// ClientData is the opaque payload the participant attached client-side.
	ClientData() string
	Role() domain.Role
	// ServerData is the opaque payload attached server-side at token
	// generation. Never changed by UpdateConnection.
	ServerData() string
	// Record reports whether streams published by this connection are
	// selected for individual recording.
	Record() bool
	// Token returns the credential string. ok is false when the snapshot was
	// fetched without the privilege to see credentials.
	Token() (value string, ok bool)
	// Publishers returns a snapshot of the streams this connection is
	// currently publishing. Safe to call while the session force-unpublishes
	// concurrently; a stream removed mid-call may or may not appear.
	Publishers() []domain.Publisher
	// Subscribers returns a snapshot of the stream ids this connection is
	// receiving. Each id referred, at fetch time, to some other connection's
	// publisher; it may have gone stale since (see Session.ResolveSubscriber).
	Subscribers() []string
}

type connection struct {
	connectionID string
	createdAt    int64
	location     string
	platform     string
	clientData   string

	// stream id -> domain.Publisher. Enumerated by readers while the session
	// removes entries on force-unpublish, hence a map with weakly consistent
	// iteration instead of a mutex-guarded plain map.
	publishers sync.Map

	mu          sync.RWMutex
	subscribers []string
	token       *domain.Token
}

// newConnection rebuilds the typed participant graph from one server
// snapshot. Any required field missing or malformed fails the whole
// construction; no partial connection ever escapes.
func newConnection(snap connectionSnapshot) (*connection, error) {
	switch {
	case snap.ConnectionID == nil:
		return nil, malformedf("connection: connectionId missing")
	case snap.CreatedAt == nil:
		return nil, malformedf("connection %s: createdAt missing", *snap.ConnectionID)
	case snap.Location == nil:
		return nil, malformedf("connection %s: location missing", *snap.ConnectionID)
	case snap.Platform == nil:
		return nil, malformedf("connection %s: platform missing", *snap.ConnectionID)
	case snap.ClientData == nil:
		return nil, malformedf("connection %s: clientData missing", *snap.ConnectionID)
	case snap.Role == nil:
		return nil, malformedf("connection %s: role missing", *snap.ConnectionID)
	case snap.ServerData == nil:
		return nil, malformedf("connection %s: serverData missing", *snap.ConnectionID)
	case snap.Record == nil:
		return nil, malformedf("connection %s: record missing", *snap.ConnectionID)
	case snap.Publishers == nil:
		return nil, malformedf("connection %s: publishers missing", *snap.ConnectionID)
	case snap.Subscribers == nil:
		return nil, malformedf("connection %s: subscribers missing", *snap.ConnectionID)
	}

	role, err := domain.ParseRole(*snap.Role)
	if err != nil {
		return nil, malformedf("connection %s: %v", *snap.ConnectionID, err)
	}

	c := &connection{
		connectionID: *snap.ConnectionID,
		createdAt:    *snap.CreatedAt,
		location:     *snap.Location,
		platform:     *snap.Platform,
		clientData:   *snap.ClientData,
	}

	for i, ps := range *snap.Publishers {
		pub, err := parsePublisher(ps)
		if err != nil {
			return nil, malformedf("connection %s: publisher %d: %v", c.connectionID, i, err)
		}
		// Duplicate stream ids are last-write-wins, not an error.
		c.publishers.Store(pub.StreamID, pub)
	}

	subs := make([]string, 0, len(*snap.Subscribers))
	for i, ss := range *snap.Subscribers {
		if ss.StreamID == nil {
			return nil, malformedf("connection %s: subscriber %d: streamId missing", c.connectionID, i)
		}
		subs = append(subs, *ss.StreamID)
	}
	c.subscribers = subs

	opts := domain.TokenOptions{Role: role, Data: *snap.ServerData, Record: *snap.Record}
	c.token = domain.NewToken(snap.Token, c.connectionID, opts)
	return c, nil
}

// parsePublisher keeps the optional media fields as reported: present stays
// present, absent stays absent.
func parsePublisher(snap publisherSnapshot) (domain.Publisher, error) {
	switch {
	case snap.StreamID == nil:
		return domain.Publisher{}, malformedf("streamId missing")
	case snap.CreatedAt == nil:
		return domain.Publisher{}, malformedf("createdAt missing")
	case snap.MediaOptions == nil:
		return domain.Publisher{}, malformedf("mediaOptions missing")
	case snap.MediaOptions.HasAudio == nil:
		return domain.Publisher{}, malformedf("mediaOptions.hasAudio missing")
	case snap.MediaOptions.HasVideo == nil:
		return domain.Publisher{}, malformedf("mediaOptions.hasVideo missing")
	}
	media := domain.MediaOptions{
		HasAudio:        *snap.MediaOptions.HasAudio,
		HasVideo:        *snap.MediaOptions.HasVideo,
		AudioActive:     snap.MediaOptions.AudioActive,
		VideoActive:     snap.MediaOptions.VideoActive,
		FrameRate:       snap.MediaOptions.FrameRate,
		TypeOfVideo:     snap.MediaOptions.TypeOfVideo,
		VideoDimensions: snap.MediaOptions.VideoDimensions,
	}
	return domain.NewPublisher(*snap.StreamID, *snap.CreatedAt, media), nil
}

func (c *connection) ConnectionID() string { return c.connectionID }
func (c *connection) CreatedAt() int64     { return c.createdAt }
func (c *connection) Location() string     { return c.location }
func (c *connection) Platform() string     { return c.platform }
func (c *connection) ClientData() string   { return c.clientData }

func (c *connection) Role() domain.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token.Options.Role
}

func (c *connection) ServerData() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token.Options.Data
}

func (c *connection) Record() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token.Options.Record
}

func (c *connection) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token.Value == nil {
		return "", false
	}
	return *c.token.Value, true
}

func (c *connection) Publishers() []domain.Publisher {
	out := make([]domain.Publisher, 0, 2)
	c.publishers.Range(func(_, v any) bool {
		out = append(out, v.(domain.Publisher))
		return true
	})
	return out
}

func (c *connection) Subscribers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.subscribers)
}

// overrideTokenOptions applies a session-authorized permission update. Only
// role and record are taken from the input; data is not updatable
// post-creation, so the current value is carried over. The credential and the
// connection binding stay as they are.
func (c *connection) overrideTokenOptions(opts domain.TokenOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token.OverrideOptions(domain.TokenOptions{
		Role:   opts.Role,
		Record: opts.Record,
		Data:   c.token.Options.Data,
	})
}

// setSubscribers replaces the subscriber list wholesale. No validation
// against live publishers: the session recomputes this after snapshot
// refreshes and force-unpublish bookkeeping, and staleness is tolerated.
func (c *connection) setSubscribers(streamIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = streamIDs
}

func (c *connection) removePublisher(streamID string) bool {
	_, ok := c.publishers.LoadAndDelete(streamID)
	return ok
}

func (c *connection) hasPublisher(streamID string) bool {
	_, ok := c.publishers.Load(streamID)
	return ok
}

func (c *connection) publisherIDs() []string {
	out := make([]string, 0, 2)
	c.publishers.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	return out
}
