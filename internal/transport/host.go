// Package transport carries messages between game hosts over websockets.
//
// A Host is either a server (listening) or a client (outbound only). Each
// connection is a Peer. Connection goroutines hand events to the host over
// a buffered channel; the game loop drains it one event at a time with
// Service, so everything the script sees happens on its own thread.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// EventType classifies a transport event.
type EventType int

const (
	EventNone EventType = iota
	EventConnect
	EventDisconnect
	EventReceive
)

// String returns the name scripts see for the event type.
func (t EventType) String() string {
	switch t {
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventReceive:
		return "receive"
	default:
		return "none"
	}
}

// Event is one transport occurrence.
type Event struct {
	Type EventType
	Peer *Peer
	Data []byte
}

var (
	// ErrPeerLimit is returned when the host's peer table is full.
	ErrPeerLimit = errors.New("transport: peer limit reached")
	// ErrAddress is returned for an unusable address or port.
	ErrAddress = errors.New("transport: invalid address")
	// ErrClosed is returned when using a closed host or peer.
	ErrClosed = errors.New("transport: closed")
)

// Options configures a host.
type Options struct {
	MaxPeers       int
	QueueSize      int
	ConnectTimeout time.Duration
	Logger         *log.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxPeers <= 0 {
		o.MaxPeers = 32
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 5 * time.Second
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Host owns a set of peers and the event queue they feed.
type Host struct {
	opts   Options
	logger *log.Logger

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	peers map[*Peer]struct{}

	listener net.Listener
	server   *http.Server
	upgrader websocket.Upgrader
}

func newHost(opts Options) *Host {
	opts = opts.withDefaults()
	return &Host{
		opts:   opts,
		logger: opts.Logger,
		events: make(chan Event, opts.QueueSize),
		done:   make(chan struct{}),
		peers:  make(map[*Peer]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Listen binds address:port and accepts peers on it.
// Bind errors are returned synchronously.
func Listen(address string, port int, opts Options) (*Host, error) {
	addr, err := joinAddr(address, port, true)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", addr, err)
	}

	h := newHost(opts)
	h.listener = ln
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.accept)
	h.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("serve", "addr", addr, "error", err)
		}
	}()
	h.logger.Debug("listening", "addr", ln.Addr().String())
	return h, nil
}

// NewClient creates a host for outbound connections only.
func NewClient(opts Options) *Host {
	return newHost(opts)
}

// Addr returns the listening address, or nil for a client host.
func (h *Host) Addr() net.Addr {
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// PeerCount returns the number of pending and connected peers.
func (h *Host) PeerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// reserve claims a slot in the peer table.
func (h *Host) reserve() (*Peer, error) {
	select {
	case <-h.done:
		return nil, ErrClosed
	default:
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.peers) >= h.opts.MaxPeers {
		return nil, ErrPeerLimit
	}
	p := newPeer(h)
	h.peers[p] = struct{}{}
	return p, nil
}

func (h *Host) forget(p *Peer) {
	h.mu.Lock()
	delete(h.peers, p)
	h.mu.Unlock()
}

// emit queues an event, giving up if the host closes.
func (h *Host) emit(ev Event) {
	select {
	case h.events <- ev:
	case <-h.done:
	}
}

// accept upgrades an incoming HTTP request to a peer connection.
func (h *Host) accept(w http.ResponseWriter, r *http.Request) {
	p, err := h.reserve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.forget(p)
		h.logger.Warn("upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	p.remote = r.RemoteAddr
	p.attach(conn)
}

// Connect starts an outbound connection and returns the pending peer.
// The outcome arrives later as a Connect or Disconnect event.
func (h *Host) Connect(address string, port int) (*Peer, error) {
	addr, err := joinAddr(address, port, false)
	if err != nil {
		return nil, err
	}
	p, err := h.reserve()
	if err != nil {
		return nil, err
	}
	p.remote = addr
	go p.dial("ws://"+addr+"/", h.opts.ConnectTimeout)
	return p, nil
}

// Service waits up to timeout for one event. A zero timeout polls without
// blocking. It returns an EventNone event when nothing arrived.
func (h *Host) Service(timeout time.Duration) Event {
	if timeout <= 0 {
		select {
		case ev := <-h.events:
			return ev
		default:
			return Event{Type: EventNone}
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-h.events:
		return ev
	case <-timer.C:
		return Event{Type: EventNone}
	case <-h.done:
		return Event{Type: EventNone}
	}
}

// Close stops listening and drops every peer. It is safe to call twice.
func (h *Host) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.done)
		if h.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if shutdownErr := h.server.Shutdown(ctx); shutdownErr != nil {
				err = h.server.Close()
			}
		}

		h.mu.Lock()
		peers := make([]*Peer, 0, len(h.peers))
		for p := range h.peers {
			peers = append(peers, p)
		}
		h.mu.Unlock()

		for _, p := range peers {
			_ = p.Disconnect()
		}
	})
	return err
}

// Release closes the host.
func (h *Host) Release() error {
	return h.Close()
}

func joinAddr(address string, port int, allowZero bool) (string, error) {
	if port < 0 || port > 65535 || (port == 0 && !allowZero) {
		return "", fmt.Errorf("%w: port %d", ErrAddress, port)
	}
	return net.JoinHostPort(address, strconv.Itoa(port)), nil
}
