// Package transport holds the reference SnapshotSource implementation. The
// core never talks to the network itself; anything that can produce snapshot
// bytes for a session id can stand in for this.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dkeye/roomkit/pkg/config"
)

type HTTPSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(cfg *config.Config) *HTTPSource {
	return &HTTPSource{
		baseURL: cfg.APIURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (s *HTTPSource) FetchSession(ctx context.Context, sessionID string) ([]byte, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", s.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
