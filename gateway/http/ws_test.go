package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/chris-hammersley/family-chart/layout"
	"github.com/chris-hammersley/family-chart/person"
	"github.com/chris-hammersley/family-chart/store"
)

func TestHandleWSSendsSnapshotOnConnect(t *testing.T) {
	g := person.NewGraph()
	g.Add(person.New("a"))
	s := store.New(g, "a", layout.DefaultConfig(), nil)
	gw := New(s)
	mux := http.NewServeMux()
	gw.RegisterRoutes("/", mux)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"snapshot"`)
}

func TestHubBroadcastReachesConnectedClients(t *testing.T) {
	g := person.NewGraph()
	g.Add(person.New("a"))
	s := store.New(g, "a", layout.DefaultConfig(), nil)
	gw := New(s)
	mux := http.NewServeMux()
	gw.RegisterRoutes("/", mux)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage() // drain the initial snapshot
	require.NoError(t, err)

	gw.Broadcast(s.GetTree(), store.UpdateProps{})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"update"`)
}
