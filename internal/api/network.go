package api

import (
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
	"github.com/vovakirdan/turtle/internal/transport"
)

func networkNamespace(st *engine.State) script.Namespace {
	nb := st.Network
	return script.Namespace{
		Name: "network",
		Funcs: map[string]script.Func{
			"newServer": func(a script.Args) (any, error) {
				addr, err := a.String(0)
				if err != nil {
					return nil, err
				}
				port, err := a.Int(1)
				if err != nil {
					return nil, err
				}
				h, err := nb.NewServer(addr, port)
				return string(h), err
			},
			"newClient": func(script.Args) (any, error) {
				h, err := nb.NewClient()
				return string(h), err
			},
			"connect": func(a script.Args) (any, error) {
				host, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				addr, err := a.String(1)
				if err != nil {
					return nil, err
				}
				port, err := a.Int(2)
				if err != nil {
					return nil, err
				}
				h, err := nb.Connect(host, addr, port)
				return string(h), err
			},
			"service": func(a script.Args) (any, error) {
				host, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				timeout, err := a.OptNumber(1, 0)
				if err != nil {
					return nil, err
				}
				ev, err := nb.Service(host, max(int(timeout), 0))
				if err != nil {
					return nil, err
				}
				out := map[string]any{"type": ev.Type.String()}
				if ev.Type == transport.EventNone {
					return out, nil
				}
				out["peer"] = string(ev.Peer)
				if ev.Type == transport.EventReceive {
					out["data"] = string(ev.Data)
				}
				return out, nil
			},
			"send": func(a script.Args) (any, error) {
				peer, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				data, err := a.String(1)
				if err != nil {
					return nil, err
				}
				mode, err := a.OptString(2, "reliable")
				if err != nil {
					return nil, err
				}
				return nil, nb.Send(peer, []byte(data), mode)
			},
			"disconnect": func(a script.Args) (any, error) {
				peer, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				return nil, nb.Disconnect(peer)
			},
			"destroy": func(a script.Args) (any, error) {
				host, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				return nil, nb.DestroyHost(host)
			},
		},
	}
}
