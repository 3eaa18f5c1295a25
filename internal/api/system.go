package api

import (
	"runtime"

	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

// osName returns the operating system name scripts see.
func osName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "OS X"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	default:
		return "Other"
	}
}

func systemNamespace(st *engine.State) script.Namespace {
	return script.Namespace{
		Name: "system",
		Funcs: map[string]script.Func{
			"getClipboardText": func(script.Args) (any, error) {
				return st.Clipboard.Text(), nil
			},
			"setClipboardText": func(a script.Args) (any, error) {
				text, err := a.String(0)
				if err != nil {
					return nil, err
				}
				return nil, st.Clipboard.SetText(text)
			},
			"getOS": func(script.Args) (any, error) {
				return osName(runtime.GOOS), nil
			},
			"getProcessorCount": func(script.Args) (any, error) {
				return runtime.NumCPU(), nil
			},
			"openURL": func(a script.Args) (any, error) {
				url, err := a.String(0)
				if err != nil {
					return nil, err
				}
				return nil, st.Opener.Open(url)
			},
		},
	}
}
