package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/share"
)

// UserMessageRetry is shown for every frame that did not hold a valid code
const UserMessageRetry = "invalid code, try again"

// Status is the JSON message sent to the scanning client
type Status struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Weapon  *domain.Weapon `json:"weapon,omitempty"`
}

// WebSocketSource reads camera frames sent as binary PNG, JPEG or GIF messages.
// A text "stop" message or a close frame cancels the scan.
type WebSocketSource struct {
	conn *websocket.Conn
}

// NewWebSocketSource wraps an upgraded connection
func NewWebSocketSource(conn *websocket.Conn) *WebSocketSource {
	conn.SetReadLimit(MaxFrameBytes)
	return &WebSocketSource{conn: conn}
}

// NextFrame blocks until the client sends a frame
func (s *WebSocketSource) NextFrame(ctx context.Context) (image.Image, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	msgType, data, err := s.conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, io.EOF
		}
		return nil, err
	}

	if msgType == websocket.TextMessage {
		if strings.EqualFold(strings.TrimSpace(string(data)), StopCommand) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: expected an image frame", domain.ErrNoCodeFound)
	}

	return share.DecodeImage(data)
}

// Close releases the camera stream by failing any pending read. The
// connection itself stays open so the final status can still be written.
func (s *WebSocketSource) Close() error {
	return s.conn.SetReadDeadline(time.Now())
}

// AcceptFunc stores a received weapon, typically in the owner's loot slot
type AcceptFunc func(ctx context.Context, w *domain.Weapon) error

// ServeWebSocket runs a scan session over conn until it ends, reporting each
// attempt to the client. The connection is closed on return.
func ServeWebSocket(ctx context.Context, m *Manager, owner string, conn *websocket.Conn, accept AcceptFunc) error {
	defer conn.Close()

	log := logger.FromContext(ctx)
	session := m.Start(ctx, owner, NewWebSocketSource(conn))
	defer session.Stop()

	if err := writeStatus(conn, Status{Status: StatusScanning}); err != nil {
		return err
	}

	for attempt := range session.Attempts() {
		if attempt.Err != nil {
			if err := writeStatus(conn, Status{Status: StatusRetry, Message: UserMessageRetry}); err != nil {
				return err
			}
			continue
		}

		if err := accept(ctx, attempt.Weapon); err != nil {
			log.Warn("Failed to accept scanned weapon", "owner", owner, "error", err)
			_ = writeStatus(conn, Status{Status: StatusError, Message: err.Error()})
			return err
		}
		return writeStatus(conn, Status{Status: StatusReceived, Weapon: attempt.Weapon})
	}

	_, err := session.Result()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrScanStopped):
		_ = writeStatus(conn, Status{Status: StatusStopped})
		return nil
	default:
		_ = writeStatus(conn, Status{Status: StatusError, Message: domain.ErrMsgScanStopped})
		return err
	}
}

func writeStatus(conn *websocket.Conn, status Status) error {
	if err := conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(status)
}
