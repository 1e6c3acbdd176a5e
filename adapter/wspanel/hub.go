// Package wspanel streams panel lines to browsers over websockets. Late
// subscribers first receive the retained backlog.
package wspanel

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/trickstertwo/dappkitty"
)

var (
	writeDeadline = 4 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

const defaultBacklog = 256

// Message is the JSON frame sent per line.
type Message struct {
	Text  string `json:"text"`
	Class string `json:"class"`
	Level string `json:"level"`
}

type Options struct {
	// Backlog is how many recent lines new subscribers receive.
	Backlog int
	// CheckOrigin is passed to the websocket upgrader; nil allows same
	// origin only.
	CheckOrigin func(r *http.Request) bool
	// OnError receives per-connection failures. Optional.
	OnError func(error)
}

// Hub is a dappkitty.Sink and an http.Handler.
type Hub struct {
	opts     Options
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	backlog [][]byte
	closed  bool

	quit chan struct{}
	wg   sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func New(opts Options) *Hub {
	if opts.Backlog <= 0 {
		opts.Backlog = defaultBacklog
	}
	if opts.OnError == nil {
		opts.OnError = func(error) {}
	}
	return &Hub{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		clients: make(map[*client]struct{}),
		quit:    make(chan struct{}),
	}
}

func (h *Hub) EnsurePanel() error { return nil }

// AppendLine records the line in the backlog and fans it out. Slow
// subscribers miss lines instead of blocking the session.
func (h *Hub) AppendLine(text, class string) error {
	b, err := json.Marshal(Message{
		Text:  text,
		Class: class,
		Level: dappkitty.ClassLevel(class).String(),
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	if len(h.backlog) == h.opts.Backlog {
		copy(h.backlog, h.backlog[1:])
		h.backlog = h.backlog[:len(h.backlog)-1]
	}
	h.backlog = append(h.backlog, b)
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
		}
	}
	return nil
}

// Subscribers is the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.opts.OnError(err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	c := &client{conn: conn, send: make(chan []byte, h.opts.Backlog+64)}
	for _, b := range h.backlog {
		c.send <- b
	}
	h.clients[c] = struct{}{}
	h.wg.Add(1)
	h.mu.Unlock()

	go h.pump(c)
}

func (h *Hub) pump(c *client) {
	defer h.wg.Done()

	var (
		gone   = make(chan struct{})
		ticker = time.NewTicker(pingPeriod)
		err    error
	)
	defer func() {
		ticker.Stop()
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		_ = c.conn.Close()
	}()

	// Reads only serve control frames; the panel is write-only.
	go func() {
		defer close(gone)
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case b := <-c.send:
			if err = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				h.opts.OnError(err)
				return
			}
			if err = c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				h.opts.OnError(err)
				return
			}
		case <-h.quit:
			// shutdown
			if err = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				return
			}
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case <-gone:
			// client gone
			return
		case <-ticker.C:
			if err = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				return
			}
			if err = c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every subscriber and waits for their pumps to exit.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.quit)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

var _ dappkitty.Sink = (*Hub)(nil)
