// Package client is the SDK entry point: it holds the configuration and the
// snapshot source and hands out per-session state containers.
package client

import (
	"sync"

	"github.com/dkeye/roomkit/pkg/config"
	"github.com/dkeye/roomkit/pkg/core"
	"github.com/dkeye/roomkit/pkg/transport"
	"github.com/rs/zerolog/log"
)

type SessionInfo struct {
	ID              string `json:"id"`
	ConnectionCount int    `json:"connection_count"`
}

type Client struct {
	cfg    *config.Config
	source core.SnapshotSource

	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// New wires a client against the configured server. A nil source falls back
// to the HTTP transport; tests and embedders can pass their own.
func New(cfg *config.Config, source core.SnapshotSource) *Client {
	if source == nil {
		source = transport.NewHTTPSource(cfg)
	}
	return &Client{
		cfg:      cfg,
		source:   source,
		sessions: make(map[string]*core.Session),
	}
}

// Session returns the state container for the given session id, creating it
// on first use. The container is empty until its first Fetch.
func (c *Client) Session(sessionID string) *core.Session {
	c.mu.RLock()
	s, ok := c.sessions[sessionID]
	c.mu.RUnlock()
	if ok {
		return s
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok = c.sessions[sessionID]; ok {
		return s
	}
	s = core.NewSession(sessionID, c.source)
	c.sessions[sessionID] = s
	log.Info().Str("module", "client").Str("session", sessionID).Msg("session tracked")
	return s
}

func (c *Client) Sessions() []SessionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]SessionInfo, 0, len(c.sessions))
	for id, s := range c.sessions {
		out = append(out, SessionInfo{ID: id, ConnectionCount: s.ConnectionCount()})
	}
	return out
}

// CloseSession drops local state for a session; the server side is untouched.
func (c *Client) CloseSession(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
	log.Info().Str("module", "client").Str("session", sessionID).Msg("session dropped")
}
