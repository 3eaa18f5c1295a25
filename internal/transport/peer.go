package transport

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Mode selects delivery semantics for Send.
type Mode int

const (
	// Reliable messages are queued until written; Send blocks when the
	// queue is full.
	Reliable Mode = iota
	// Unreliable messages are dropped when the queue is full.
	Unreliable
)

// ParseMode maps a script mode name to a Mode. Unknown names are reliable.
func ParseMode(s string) Mode {
	if s == "unreliable" {
		return Unreliable
	}
	return Reliable
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 1 << 20
)

// Peer is one connection, pending or established.
type Peer struct {
	host   *Host
	remote string
	out    chan []byte

	// closing is closed when the local side asks to disconnect.
	closing   chan struct{}
	closeOnce sync.Once
	// gone is closed once the peer is torn down and reported.
	gone       chan struct{}
	finishOnce sync.Once

	mu   sync.Mutex
	conn *websocket.Conn
}

func newPeer(h *Host) *Peer {
	return &Peer{
		host:    h,
		out:     make(chan []byte, h.opts.QueueSize),
		closing: make(chan struct{}),
		gone:    make(chan struct{}),
	}
}

// Host returns the host that owns the peer.
func (p *Peer) Host() *Host {
	return p.host
}

// RemoteAddr returns the peer's address as known at connect time.
func (p *Peer) RemoteAddr() string {
	return p.remote
}

func (p *Peer) dial(url string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		p.host.logger.Debug("dial", "url", url, "error", err)
		p.finish()
		return
	}
	select {
	case <-p.closing:
		_ = conn.Close()
		p.finish()
		return
	default:
	}
	p.attach(conn)
}

// attach binds an established connection, reports it and starts the
// read and write loops.
func (p *Peer) attach(conn *websocket.Conn) {
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()

	p.host.emit(Event{Type: EventConnect, Peer: p})
	go p.writeLoop(conn)
	go p.readLoop(conn)
}

func (p *Peer) readLoop(conn *websocket.Conn) {
	defer p.finish()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		p.host.emit(Event{Type: EventReceive, Peer: p, Data: data})
	}
}

func (p *Peer) writeLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case data := <-p.out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		case <-p.closing:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
			return
		case <-p.gone:
			return
		}
	}
}

// finish tears the peer down and reports the disconnect exactly once.
func (p *Peer) finish() {
	p.finishOnce.Do(func() {
		close(p.gone)
		p.mu.Lock()
		if p.conn != nil {
			_ = p.conn.Close()
		}
		p.mu.Unlock()
		p.host.forget(p)
		p.host.emit(Event{Type: EventDisconnect, Peer: p})
	})
}

// Send queues data for delivery.
func (p *Peer) Send(data []byte, mode Mode) error {
	select {
	case <-p.gone:
		return ErrClosed
	case <-p.closing:
		return ErrClosed
	default:
	}

	msg := make([]byte, len(data))
	copy(msg, data)

	if mode == Unreliable {
		select {
		case p.out <- msg:
		default:
		}
		return nil
	}
	select {
	case p.out <- msg:
		return nil
	case <-p.gone:
		return ErrClosed
	}
}

// Disconnect asks the peer to close. The Disconnect event follows once the
// connection is gone. It is safe to call more than once.
func (p *Peer) Disconnect() error {
	p.closeOnce.Do(func() {
		close(p.closing)
	})
	return nil
}

// Release disconnects the peer.
func (p *Peer) Release() error {
	return p.Disconnect()
}
