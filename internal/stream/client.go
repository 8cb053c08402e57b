package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/handstream/handstream/internal/domain"
)

// Client is the viewer side of the stream: one long-lived connection opened
// at startup, decoded envelopes delivered into a single-consumer channel in
// strict arrival order. There is no reconnection policy; when the connection
// drops the channel closes and the viewer keeps showing its last state.
type Client struct {
	conn   *websocket.Conn
	events chan domain.Envelope
	logger *slog.Logger
}

// Dial connects to the stream server's /ws endpoint. serverURL is the plain
// HTTP address of the server (e.g. http://localhost:5000).
func Dial(ctx context.Context, serverURL string, logger *slog.Logger) (*Client, error) {
	wsURL, err := websocketURL(serverURL)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", wsURL, err)
	}

	logger.Info("connected to tracking stream", "url", wsURL)

	c := &Client{
		conn:   conn,
		events: make(chan domain.Envelope, 64),
		logger: logger,
	}
	go c.readLoop()

	return c, nil
}

// Events returns the inbound event channel. It is closed when the connection
// drops; events are delivered in arrival order with no overlap.
func (c *Client) Events() <-chan domain.Envelope {
	return c.events
}

// Close tears down the connection. The event channel closes shortly after.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.events)

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.logger.Info("disconnected from tracking stream", "error", err)
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			c.logger.Warn("discarding malformed message", "error", err)
			continue
		}

		c.events <- env
	}
}

// websocketURL rewrites an http(s) server address to its ws(s) /ws endpoint.
func websocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parsing server URL %q: %w", serverURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q in server URL", u.Scheme)
	}

	u.Path = "/ws"
	return u.String(), nil
}
