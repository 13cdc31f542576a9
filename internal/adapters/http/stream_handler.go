package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamHandler upgrades clients to a websocket and forwards collection
// snapshots from the mirror. Every frame is a complete listing; clients
// replace their local copy wholesale on each frame.
type StreamHandler struct {
	mirror   *mirror.Mirror
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(m *mirror.Mirror, logger *logger.Logger) *StreamHandler {
	return &StreamHandler{
		mirror: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Browser origin checks are handled by the CORS layer; the
			// kiosk connects from a pinned local origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

var knownCollections = map[string]bool{
	entities.CollectionTasks:        true,
	entities.CollectionWeeklyAgenda: true,
	entities.CollectionAgendaItems:  true,
	entities.CollectionKennisbank:   true,
	entities.CollectionOrders:       true,
}

// Stream handles the snapshot stream endpoint. The collections query param
// selects which collections to follow, comma separated; absent means all.
// @Summary Subscribe to collection snapshots
// @Tags stream
// @Param collections query string false "Comma-separated collection names"
// @Router /stream [get]
func (h *StreamHandler) Stream(c echo.Context) error {
	collections, err := parseCollections(c.QueryParam("collections"))
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", "error", err, "remote", c.RealIP())
		return err
	}

	h.logger.Info("Stream client connected", "remote", c.RealIP(), "collections", collections)
	go h.serve(conn, collections)

	return nil
}

func parseCollections(param string) ([]string, error) {
	if param == "" {
		return []string{
			entities.CollectionTasks,
			entities.CollectionWeeklyAgenda,
			entities.CollectionAgendaItems,
			entities.CollectionKennisbank,
			entities.CollectionOrders,
		}, nil
	}

	var out []string
	for _, name := range strings.Split(param, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !knownCollections[name] {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Unknown collection: "+name)
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "No collections selected")
	}
	return out, nil
}

// serve pumps snapshots to one client until the connection drops. Each
// subscription feeds a shared outbound channel; snapshot order across
// collections is not guaranteed, but per-collection order is.
func (h *StreamHandler) serve(conn *websocket.Conn, collections []string) {
	defer conn.Close()

	subs := make([]*mirror.Subscription, 0, len(collections))
	for _, name := range collections {
		subs = append(subs, h.mirror.Subscribe(name))
	}
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()

	out := make(chan mirror.Snapshot)
	done := make(chan struct{})
	defer close(done)

	for _, sub := range subs {
		go func(sub *mirror.Subscription) {
			for snap := range sub.C {
				select {
				case out <- snap:
				case <-done:
					return
				}
			}
		}(sub)
	}

	// Reader goroutine: we never expect frames from the client, but reading
	// is what surfaces close and pong frames.
	closed := make(chan struct{})
	go func() {
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(closed)
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case snap := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				h.logger.Warn("Stream write failed", "error", err, "collection", snap.Collection)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
