package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"suiwal/pkg/wallet"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *Server {
	bus := wallet.NewBus()
	store := wallet.NewStore(nil, bus)
	faucet := wallet.NewFaucet(nil, store, bus)
	return NewServer(store, faucet, bus)
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer()

	req, _ := http.NewRequest("GET", "/api/status", nil)
	rr := httptest.NewRecorder()

	s.mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Contains(t, resp, "accounts")
	assert.Contains(t, resp, "active")
	assert.Contains(t, resp, "cooldown")
}

func TestHandleWS(t *testing.T) {
	s := newTestServer()
	server := httptest.NewServer(s.mux)
	defer server.Close()

	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	ws, _, err := websocket.DefaultDialer.Dial(u, nil)
	assert.NoError(t, err)
	defer func() { _ = ws.Close() }()

	// Read initial state
	var msg map[string]interface{}
	err = ws.ReadJSON(&msg)
	assert.NoError(t, err)
	assert.Equal(t, "initial", msg["type"])
}
