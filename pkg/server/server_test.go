package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chazu/gengine/pkg/app"
	"github.com/chazu/gengine/pkg/config"
	"github.com/chazu/gengine/pkg/engine"
	"github.com/chazu/gengine/pkg/kernel/sdfx"
	"github.com/chazu/gengine/pkg/render"
)

func newTestServer(t *testing.T, tweaks ...func(*Server)) (*Server, *httptest.Server) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cfg := config.Default()
	a := app.New(
		engine.NewEngine(engine.WithLogger(logger)),
		render.New(sdfx.New(sdfx.WithMeshCells(32)), render.WithLogger(logger)),
		cfg, logger)
	srv := New(a, cfg, logger)
	for _, tweak := range tweaks {
		tweak(srv)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketEvaluate(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Request{Source: `
(material "red" :color "#ff0000")
(group "g" (solid (rectangle (point 0 0) (point 2 1)) "red") (solid-box 1 1 1))
`}))

	var res app.Result
	require.NoError(t, conn.ReadJSON(&res))
	require.Empty(t, res.Errors)
	require.Len(t, res.Meshes, 2)
	assert.Equal(t, "#ff0000", res.Meshes[0].Color)
	assert.Equal(t, render.ModeTriangles, res.Meshes[0].Mode)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, res.Meshes[0].Indices)
	assert.NotEmpty(t, res.Meshes[1].Vertices)
	assert.Contains(t, res.Materials, "red")
}

func TestWebSocketRejectsOversizedMessages(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, int64(MaxMessageSize), srv.readLimit)

	_, ts := newTestServer(t, func(s *Server) { s.readLimit = 64 })
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Request{Source: "; " + strings.Repeat("x", 200)}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)
}

func TestWebSocketKeepsConnectionAcrossErrors(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var res app.Result
	require.NoError(t, conn.ReadJSON(&res))
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "bad request")

	require.NoError(t, conn.WriteJSON(Request{Source: `(part "ghost")`}))
	res = app.Result{}
	require.NoError(t, conn.ReadJSON(&res))
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "ghost")

	require.NoError(t, conn.WriteJSON(Request{Source: `(group "g" (circle (point 0 0) 1))`}))
	res = app.Result{}
	require.NoError(t, conn.ReadJSON(&res))
	assert.Empty(t, res.Errors)
	assert.Len(t, res.Meshes, 1)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestPlainHTTPOnWebSocketRoute(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListenAndServeShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := config.Default()
	cfg.ListenAddr = addr
	srv := New(nil, cfg, zaptest.NewLogger(t))
	assert.Equal(t, addr, srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
