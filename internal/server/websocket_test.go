package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanium/barscan/internal/config"
	"github.com/scanium/barscan/internal/testutil"
)

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()
	cfg := config.DefaultConfig()
	mux := http.NewServeMux()
	NewServer(&cfg).SetupRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocketDetect(t *testing.T) {
	conn := dialTestServer(t)

	img := testutil.NewBarcodeImage(320, 200, testutil.DefaultBarcodeSpec(160, 100))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, encodePNG(t, img)))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp wsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 1, resp.Result.Count)
}

func TestWebSocketRejectsTextFrames(t *testing.T) {
	conn := dialTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp wsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "binary")
}

func TestWebSocketRejectsGarbageImage(t *testing.T) {
	conn := dialTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("junk")))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp wsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "error", resp.Status)
}
