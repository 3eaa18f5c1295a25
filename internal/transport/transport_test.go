package transport

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"
)

// waitEvent services h until an event other than None arrives.
func waitEvent(t *testing.T, h *Host) Event {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if ev := h.Service(50 * time.Millisecond); ev.Type != EventNone {
			return ev
		}
	}
	t.Fatal("timed out waiting for an event")
	return Event{}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestServiceZeroTimeoutDoesNotBlock(t *testing.T) {
	h := NewClient(Options{})
	defer h.Close()

	start := time.Now()
	ev := h.Service(0)
	if ev.Type != EventNone {
		t.Errorf("Service(0).Type = %v, expected none", ev.Type)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Service(0) took %v, expected to return immediately", elapsed)
	}
}

func TestConnectRefusedReportsDisconnect(t *testing.T) {
	h := NewClient(Options{MaxPeers: 1, ConnectTimeout: time.Second})
	defer h.Close()

	p, err := h.Connect("127.0.0.1", freePort(t))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	ev := waitEvent(t, h)
	if ev.Type != EventDisconnect || ev.Peer != p {
		t.Errorf("event = %v for %p, expected disconnect for %p", ev.Type, ev.Peer, p)
	}
	if h.PeerCount() != 0 {
		t.Errorf("PeerCount() = %d, expected 0", h.PeerCount())
	}
}

func TestRoundTrip(t *testing.T) {
	server, err := Listen("127.0.0.1", 0, Options{})
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer server.Close()
	port := server.Addr().(*net.TCPAddr).Port

	client := NewClient(Options{MaxPeers: 1})
	defer client.Close()

	clientPeer, err := client.Connect("127.0.0.1", port)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if ev := waitEvent(t, client); ev.Type != EventConnect || ev.Peer != clientPeer {
		t.Fatalf("client event = %v, expected connect", ev.Type)
	}
	ev := waitEvent(t, server)
	if ev.Type != EventConnect {
		t.Fatalf("server event = %v, expected connect", ev.Type)
	}
	serverPeer := ev.Peer

	if err := clientPeer.Send([]byte("hello"), Reliable); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	ev = waitEvent(t, server)
	if ev.Type != EventReceive || string(ev.Data) != "hello" || ev.Peer != serverPeer {
		t.Fatalf("server event = %v %q, expected receive %q", ev.Type, ev.Data, "hello")
	}

	payload := []byte("a\x00b")
	if err := serverPeer.Send(payload, Unreliable); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	ev = waitEvent(t, client)
	if ev.Type != EventReceive || !bytes.Equal(ev.Data, payload) {
		t.Fatalf("client event = %v %q, expected receive %q", ev.Type, ev.Data, payload)
	}

	if err := clientPeer.Disconnect(); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	if ev := waitEvent(t, client); ev.Type != EventDisconnect {
		t.Errorf("client event = %v, expected disconnect", ev.Type)
	}
	if ev := waitEvent(t, server); ev.Type != EventDisconnect || ev.Peer != serverPeer {
		t.Errorf("server event = %v, expected disconnect", ev.Type)
	}
	if err := clientPeer.Send([]byte("late"), Reliable); !errors.Is(err, ErrClosed) {
		t.Errorf("Send() after disconnect error = %v, expected %v", err, ErrClosed)
	}
}

func TestPeerLimit(t *testing.T) {
	h := NewClient(Options{MaxPeers: 1, ConnectTimeout: 5 * time.Second})
	defer h.Close()

	// A listener that never answers keeps the first dial pending.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	if _, err := h.Connect("127.0.0.1", port); err != nil {
		t.Fatalf("first Connect() error = %v", err)
	}
	if _, err := h.Connect("127.0.0.1", port); !errors.Is(err, ErrPeerLimit) {
		t.Errorf("second Connect() error = %v, expected %v", err, ErrPeerLimit)
	}
}

func TestConnectInvalidPort(t *testing.T) {
	h := NewClient(Options{})
	defer h.Close()

	for _, port := range []int{0, -1, 70000} {
		if _, err := h.Connect("127.0.0.1", port); !errors.Is(err, ErrAddress) {
			t.Errorf("Connect(port %d) error = %v, expected %v", port, err, ErrAddress)
		}
	}
}

func TestListenBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	if _, err := Listen("127.0.0.1", port, Options{}); err == nil {
		t.Error("Listen() on a taken port succeeded, expected an error")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
	}{
		{"reliable", Reliable},
		{"unreliable", Unreliable},
		{"", Reliable},
		{"sometimes", Reliable},
	}
	for _, tc := range tests {
		if got := ParseMode(tc.in); got != tc.expected {
			t.Errorf("ParseMode(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
