package wrpc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// ErrConnectionFailed is returned when the transport handshake against
// an endpoint does not complete.
var ErrConnectionFailed = errors.New("connection failed")

// defaultPingTimeout bounds how long a ping waits for its pong.
const defaultPingTimeout = 10 * time.Second

// Client is an open wRPC transport session. It pins the endpoint URL
// and the wire encoding negotiated at dial time.
type Client struct {
	conn     *websocket.Conn
	url      string
	encoding Encoding
}

// DialContext opens a websocket session against the endpoint. http and
// https URLs are accepted and rewritten to their websocket schemes, as
// resolvers commonly advertise endpoints that way. Cancelling the
// context aborts the handshake.
func DialContext(ctx context.Context, endpoint string,
	encoding Encoding) (*Client, error) {

	wsURL, err := websocketURL(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	log.Debugf("Dialing %s (encoding=%v)", wsURL, encoding)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: dialing %s: %v",
			ErrConnectionFailed, wsURL, err)
	}

	log.Infof("Connected to %s (encoding=%v)", wsURL, encoding)

	return &Client{
		conn:     conn,
		url:      wsURL,
		encoding: encoding,
	}, nil
}

// URL returns the endpoint the session is connected to.
func (c *Client) URL() string {
	return c.url
}

// Encoding returns the wire encoding of the session.
func (c *Client) Encoding() Encoding {
	return c.encoding
}

// Ping sends a transport-level ping and waits for the pong, bounded by
// the context deadline when one is set.
func (c *Client) Ping(ctx context.Context) error {
	deadline := time.Now().Add(defaultPingTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}

	pong := make(chan struct{}, 1)
	c.conn.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}

		// Expire the pending read so Ping returns as soon as the
		// pong is in.
		return c.conn.SetReadDeadline(time.Unix(1, 0))
	})

	err := c.conn.WriteControl(
		websocket.PingMessage, nil, deadline,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	// Reading is what delivers the pong to the handler.
	c.conn.SetReadDeadline(deadline)
	if _, _, err := c.conn.NextReader(); err != nil {
		select {
		case <-pong:
			return nil
		default:
		}
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return nil
}

// Close tears down the transport session.
func (c *Client) Close() error {
	log.Debugf("Closing session to %s", c.url)
	return c.conn.Close()
}

// websocketURL rewrites an endpoint URL to its websocket scheme.
func websocketURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	return u.String(), nil
}
