package client

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomkit/pkg/config"
)

type stubSource struct{ payload []byte }

func (s *stubSource) FetchSession(_ context.Context, _ string) ([]byte, error) {
	return s.payload, nil
}

func testConfig() *config.Config {
	return &config.Config{APIURL: "http://localhost:8080", RequestTimeout: time.Second}
}

func TestSessionGetOrCreate(t *testing.T) {
	c := New(testConfig(), &stubSource{})

	s1 := c.Session("ses_1")
	s2 := c.Session("ses_1")
	require.Same(t, s1, s2)
	require.NotSame(t, s1, c.Session("ses_2"))
}

func TestSessionsListing(t *testing.T) {
	payload, err := sonic.Marshal(map[string]any{
		"sessionId":   "ses_1",
		"createdAt":   int64(1),
		"connections": []any{},
	})
	require.NoError(t, err)

	c := New(testConfig(), &stubSource{payload: payload})
	s := c.Session("ses_1")
	require.NoError(t, s.Fetch(context.Background()))

	infos := c.Sessions()
	require.Len(t, infos, 1)
	require.Equal(t, SessionInfo{ID: "ses_1", ConnectionCount: 0}, infos[0])
}

func TestCloseSessionDropsState(t *testing.T) {
	c := New(testConfig(), &stubSource{})
	s1 := c.Session("ses_1")
	c.CloseSession("ses_1")
	require.NotSame(t, s1, c.Session("ses_1"))
}

func TestNilSourceFallsBackToHTTP(t *testing.T) {
	c := New(testConfig(), nil)
	require.NotNil(t, c.source)
}
