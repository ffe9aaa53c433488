package ga4

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/tracking"
)

type received struct {
	query url.Values
	body  payload
}

func newServer(t *testing.T, status int) (*httptest.Server, chan received) {
	t.Helper()
	ch := make(chan received, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		ch <- received{query: r.URL.Query(), body: p}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, ch
}

func TestSend(t *testing.T) {
	server, ch := newServer(t, http.StatusNoContent)
	c := NewClient(server.URL, "G-1", "secret", time.Second, logger.Nop())

	err := c.Send(context.Background(), "client-1", "cta_click", map[string]any{"event_label": "hero"})
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, []string{"G-1"}, got.query["measurement_id"])
	assert.Equal(t, []string{"secret"}, got.query["api_secret"])
	assert.Equal(t, "client-1", got.body.ClientID)
	require.Len(t, got.body.Events, 1)
	assert.Equal(t, "cta_click", got.body.Events[0].Name)
	assert.Equal(t, "hero", got.body.Events[0].Params["event_label"])
}

func TestSendGeneratesClientID(t *testing.T) {
	server, ch := newServer(t, http.StatusOK)
	c := NewClient(server.URL, "G-1", "secret", time.Second, logger.Nop())

	require.NoError(t, c.Send(context.Background(), "", "scroll_depth", nil))

	got := <-ch
	assert.Len(t, got.body.ClientID, 36)
}

func TestSendReportsStatus(t *testing.T) {
	server, _ := newServer(t, http.StatusBadRequest)
	c := NewClient(server.URL, "G-1", "secret", time.Second, logger.Nop())

	err := c.Send(context.Background(), "c", "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestDispatchConfigBecomesPageView(t *testing.T) {
	server, ch := newServer(t, http.StatusNoContent)
	c := NewClient(server.URL, "G-1", "secret", time.Second, logger.Nop())

	c.Dispatch("client-1", tracking.CommandConfig, "G-1", map[string]any{"page_path": "/"})

	select {
	case got := <-ch:
		assert.Equal(t, "page_view", got.body.Events[0].Name)
		assert.Equal(t, "/", got.body.Events[0].Params["page_path"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}
