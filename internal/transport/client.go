package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alexanderramin/kairos/internal/syncdoc"
)

// HTTPTransport opens connections against a Hub's long-poll endpoints over
// plain net/http. It implements syncdoc.Transport.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport builds an HTTPTransport using client, or http.DefaultClient
// if nil.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{Client: client}
}

// Open starts an HTTP long-poll session against url for documentID. The
// returned Conn's Updates channel is fed by a background goroutine that
// repeatedly GETs the poll endpoint until ctx is cancelled or Close is
// called.
func (t *HTTPTransport) Open(ctx context.Context, url, documentID string) (syncdoc.Conn, error) {
	cctx, cancel := context.WithCancel(ctx)
	c := &httpConn{
		client:     t.Client,
		baseURL:    url,
		documentID: documentID,
		updates:    make(chan []byte, 8),
		cancel:     cancel,
	}
	go c.pollLoop(cctx)
	return c, nil
}

type httpConn struct {
	client     *http.Client
	baseURL    string
	documentID string
	updates    chan []byte
	cancel     context.CancelFunc
}

type wireMessage struct {
	Data []byte `json:"data"`
}

func (c *httpConn) endpoint() string {
	return fmt.Sprintf("%s/documents/%s/updates", c.baseURL, c.documentID)
}

// Send publishes an update to the hub.
func (c *httpConn) Send(ctx context.Context, update []byte) error {
	body, err := json.Marshal(wireMessage{Data: update})
	if err != nil {
		return fmt.Errorf("encoding update: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("publishing update: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("publishing update: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Updates returns the channel of inbound updates.
func (c *httpConn) Updates() <-chan []byte {
	return c.updates
}

// Close stops the poll loop and closes the updates channel.
func (c *httpConn) Close() error {
	c.cancel()
	return nil
}

func (c *httpConn) pollLoop(ctx context.Context) {
	defer close(c.updates)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
		if err != nil {
			return
		}
		resp, err := c.client.Do(req)
		if err != nil {
			// ctx cancellation surfaces here as a request error; any other
			// transient network error just retries on the next loop iteration.
			select {
			case <-ctx.Done():
				return
			default:
				continue
			}
		}

		if resp.StatusCode == http.StatusNoContent {
			resp.Body.Close()
			continue
		}

		var msg wireMessage
		err = json.NewDecoder(resp.Body).Decode(&msg)
		resp.Body.Close()
		if err != nil {
			continue
		}

		select {
		case c.updates <- msg.Data:
		case <-ctx.Done():
			return
		}
	}
}
