// Package ws bridges websocket connections to the realtime session registry.
// Each accepted connection becomes one registry session; the write pump
// drains the session's event channel onto the wire and the read pump keeps
// the session's liveness fresh.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second

	maxControlMessageSize = 512
)

// controlMessage is the only inbound frame the gateway understands.
type controlMessage struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

// Gateway upgrades HTTP requests to websocket sessions.
type Gateway struct {
	registry *realtime.Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewGateway(registry *realtime.Registry, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_gateway"),
	}
}

// Handle serves GET /ws. The credential arrives either as a ?token query
// parameter or as a bearer header; validation happens inside the registry
// before the connection is upgraded.
func (g *Gateway) Handle(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		token = bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
	}

	session, err := g.registry.Connect(ctx.Request().Context(), token)
	if err != nil {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	conn, err := g.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		g.registry.Disconnect(session.ID())
		return nil
	}

	go g.writePump(session, conn)
	go g.readPump(session, conn)
	return nil
}

// writePump serializes every event the session may receive onto the wire.
// It owns all writes to the connection, including pings and the close frame.
func (g *Gateway) writePump(session *realtime.Session, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-session.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}

			payload, err := json.Marshal(realtime.Envelope{
				Event: event.Type,
				Data:  event.Payload,
			})
			if err != nil {
				g.logger.Error("could not encode event",
					"event", string(event.Type), "error", err)
				continue
			}

			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				g.registry.Disconnect(session.ID())
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				g.registry.Disconnect(session.ID())
				return
			}
		}
	}
}

// readPump consumes inbound frames. Any frame, pong included, refreshes the
// session's liveness; join_room is the only control message honored.
func (g *Gateway) readPump(session *realtime.Session, conn *websocket.Conn) {
	defer g.registry.Disconnect(session.ID())

	conn.SetReadLimit(maxControlMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		session.Touch()
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		session.Touch()
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Action == "join_room" && msg.Room != "" {
			g.registry.JoinRoom(session.ID(), msg.Room)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	return header[len(prefix):]
}
