// Package netbridge exposes transport hosts and peers to scripts as
// registry handles and turns transport events into script events.
package netbridge

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/turtle/internal/registry"
	"github.com/vovakirdan/turtle/internal/transport"
)

var (
	ErrBind         = errors.New("network: could not create server")
	ErrHostNotFound = errors.New("network: host not found")
	ErrConnect      = errors.New("network: could not connect")
	ErrPeerNotFound = errors.New("network: peer not found")
)

// Event is a transport event with the peer resolved to its handle.
type Event struct {
	Type transport.EventType
	Peer registry.Handle
	Data []byte
}

// Bridge keeps the reverse index from transport peers to handles.
type Bridge struct {
	reg        *registry.Registry
	serverOpts transport.Options
	clientOpts transport.Options
	peers      map[*transport.Peer]registry.Handle
}

// New creates a bridge. serverOpts applies to NewServer hosts and
// clientOpts to NewClient hosts.
func New(reg *registry.Registry, serverOpts, clientOpts transport.Options) *Bridge {
	if clientOpts.MaxPeers <= 0 {
		clientOpts.MaxPeers = 1
	}
	return &Bridge{
		reg:        reg,
		serverOpts: serverOpts,
		clientOpts: clientOpts,
		peers:      make(map[*transport.Peer]registry.Handle),
	}
}

// NewServer binds address:port and returns the host handle.
func (b *Bridge) NewServer(address string, port int) (registry.Handle, error) {
	h, err := transport.Listen(address, port, b.serverOpts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBind, err)
	}
	return b.reg.Create(registry.KindHost, h), nil
}

// NewClient returns the handle of an unbound host for outbound peers.
func (b *Bridge) NewClient() (registry.Handle, error) {
	return b.reg.Create(registry.KindHost, transport.NewClient(b.clientOpts)), nil
}

func (b *Bridge) host(h registry.Handle) (*transport.Host, error) {
	host, err := registry.Get[*transport.Host](b.reg, h, registry.KindHost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostNotFound, err)
	}
	return host, nil
}

func (b *Bridge) peer(h registry.Handle) (*transport.Peer, error) {
	p, err := registry.Get[*transport.Peer](b.reg, h, registry.KindPeer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPeerNotFound, err)
	}
	return p, nil
}

// track returns the handle for p, registering it on first sight.
func (b *Bridge) track(p *transport.Peer) registry.Handle {
	if h, ok := b.peers[p]; ok {
		return h
	}
	h := b.reg.Create(registry.KindPeer, p)
	b.peers[p] = h
	return h
}

// Connect starts an outbound connection from host. The pending peer's
// handle is valid immediately; the outcome arrives through Service.
func (b *Bridge) Connect(hostHandle registry.Handle, address string, port int) (registry.Handle, error) {
	host, err := b.host(hostHandle)
	if err != nil {
		return "", err
	}
	p, err := host.Connect(address, port)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return b.track(p), nil
}

// Service returns at most one event from host, waiting up to timeoutMillis.
// Zero polls without blocking.
func (b *Bridge) Service(hostHandle registry.Handle, timeoutMillis int) (Event, error) {
	host, err := b.host(hostHandle)
	if err != nil {
		return Event{}, err
	}
	ev := host.Service(time.Duration(timeoutMillis) * time.Millisecond)
	switch ev.Type {
	case transport.EventConnect, transport.EventReceive:
		return Event{Type: ev.Type, Peer: b.track(ev.Peer), Data: ev.Data}, nil
	case transport.EventDisconnect:
		h, ok := b.peers[ev.Peer]
		if ok {
			delete(b.peers, ev.Peer)
			b.reg.Remove(h)
		}
		return Event{Type: ev.Type, Peer: h}, nil
	default:
		return Event{Type: transport.EventNone}, nil
	}
}

// Send queues payload to the peer. mode is "reliable" or "unreliable";
// anything else is reliable.
func (b *Bridge) Send(peerHandle registry.Handle, payload []byte, mode string) error {
	p, err := b.peer(peerHandle)
	if err != nil {
		return err
	}
	if err := p.Send(payload, transport.ParseMode(mode)); err != nil {
		return fmt.Errorf("network: send: %w", err)
	}
	return nil
}

// Disconnect asks the peer to close. The handle stays valid until the
// Disconnect event is serviced.
func (b *Bridge) Disconnect(peerHandle registry.Handle) error {
	p, err := b.peer(peerHandle)
	if err != nil {
		return err
	}
	return p.Disconnect()
}

// DestroyHost closes the host and forgets every peer it owned.
func (b *Bridge) DestroyHost(hostHandle registry.Handle) error {
	host, err := b.host(hostHandle)
	if err != nil {
		return err
	}
	for p, h := range b.peers {
		if p.Host() == host {
			delete(b.peers, p)
			b.reg.Remove(h)
		}
	}
	b.reg.Remove(hostHandle)
	return host.Close()
}

// Len returns the number of tracked peers.
func (b *Bridge) Len() int {
	return len(b.peers)
}
