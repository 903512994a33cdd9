package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) ValidateCredential(ctx context.Context, token string) (ports.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ports.Claims), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, authenticator *MockAuthenticator) (*httptest.Server, *realtime.Registry) {
	t.Helper()

	registry, err := realtime.NewRegistry(authenticator, 8, testLogger())
	require.NoError(t, err)

	gateway := NewGateway(registry, testLogger())

	e := echo.New()
	e.GET("/ws", gateway.Handle)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, registry
}

func wsURL(server *httptest.Server, token string) string {
	url := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func Test_Gateway_RejectsInvalidToken(t *testing.T) {
	authenticator := new(MockAuthenticator)
	authenticator.On("ValidateCredential", mock.Anything, "bad").
		Return(ports.Claims{}, errs.NewAuthError("invalid credential"))

	server, registry := newTestServer(t, authenticator)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "bad"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, registry.Count())
}

func Test_Gateway_DeliversEvents(t *testing.T) {
	driverID := kernel.NewUUID()
	authenticator := new(MockAuthenticator)
	authenticator.On("ValidateCredential", mock.Anything, "good").
		Return(ports.Claims{UserID: driverID, Role: user.RoleAdmin}, nil)

	server, registry := newTestServer(t, authenticator)
	bus, err := realtime.NewBus(registry, nil, testLogger())
	require.NoError(t, err)

	conn, _, dialErr := websocket.DefaultDialer.Dial(wsURL(server, "good"), nil)
	require.NoError(t, dialErr)
	defer conn.Close()

	require.Eventually(t, func() bool { return registry.Count() == 1 },
		time.Second, 10*time.Millisecond)

	bus.Broadcast(realtime.NewEvent(realtime.EventJobCreated, map[string]string{"id": "j1"}))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, "job_created", envelope.Event)
	assert.JSONEq(t, `{"id":"j1"}`, string(envelope.Data))
}

func Test_Gateway_JoinRoomAndDisconnect(t *testing.T) {
	authenticator := new(MockAuthenticator)
	authenticator.On("ValidateCredential", mock.Anything, "good").
		Return(ports.Claims{UserID: kernel.NewUUID(), Role: user.RoleDispatcher}, nil)

	server, registry := newTestServer(t, authenticator)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "good"), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return registry.Count() == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(controlMessage{Action: "join_room", Room: "site-7"}))
	require.Eventually(t, func() bool {
		return len(registry.Snapshot("site-7")) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return registry.Count() == 0 },
		time.Second, 10*time.Millisecond)
}
