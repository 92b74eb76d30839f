package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomkit/pkg/config"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/sessions/:id", func(c *gin.Context) {
		if c.Param("id") != "ses_1" {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sessionId":   "ses_1",
			"createdAt":   1699999999000,
			"connections": []any{},
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceFetchSession(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(&config.Config{APIURL: srv.URL, RequestTimeout: time.Second})

	data, err := src.FetchSession(context.Background(), "ses_1")
	require.NoError(t, err)
	require.Contains(t, string(data), `"sessionId":"ses_1"`)
}

func TestHTTPSourceNonOKStatus(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(&config.Config{APIURL: srv.URL, RequestTimeout: time.Second})

	_, err := src.FetchSession(context.Background(), "ses_missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 404")
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(&config.Config{APIURL: srv.URL, RequestTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.FetchSession(ctx, "ses_1")
	require.ErrorIs(t, err, context.Canceled)
}
